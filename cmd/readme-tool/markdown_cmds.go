// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/markdown"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var mode string
	var asJson bool

	cmd := &cobra.Command{
		Use:   "score [file|-]",
		Short: "Print the quality score of a README",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scoringMode := getSystemInfo(cmd).GetScoringMode()
			if mode != "" {
				scoringMode = view.ScoringMode(strings.ToLower(mode))
				if !scoringMode.IsValid() {
					return fmt.Errorf("unknown scoring mode %q, expected %s or %s", mode, view.ScoringModeLegacy, view.ScoringModeCorrected)
				}
			}
			md, err := readMarkdown(cmd, args)
			if err != nil {
				return err
			}
			result := markdown.ScoreDocumentWithMode(md, scoringMode)
			if asJson {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			m := result.Metrics
			fmt.Fprintf(cmd.OutOrStdout(), "Score:       %d/100\n", result.Score)
			fmt.Fprintf(cmd.OutOrStdout(), "Words:       %d\n", m.WordCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Sections:    %d\n", m.SectionCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Code blocks: %g\n", m.CodeBlockCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Links:       %d\n", m.LinkCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Badges:      %d\n", m.BadgeCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "scoring mode: legacy or corrected (defaults to QUALITY_SCORING_MODE)")
	cmd.Flags().BoolVar(&asJson, "json", false, "print the result as JSON")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a README into an HTML fragment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMarkdown(cmd, args)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(ensureTrailingNewline(markdown.RenderToHtml(md))))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	return cmd
}

func newExportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Convert a README into md, html or txt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMarkdown(cmd, args)
			if err != nil {
				return err
			}
			file, err := service.NewExportService().Export(md, view.ExportFormat(format))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, file.Content)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(view.ExportMarkdown), "export format: md, html or txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "preview [file|-]",
		Short: "Show a README in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMarkdown(cmd, args)
			if err != nil {
				return err
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style: dark, light, dracula, notty")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}
