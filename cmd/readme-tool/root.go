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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/service"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ctxKey string

const systemInfoKey ctxKey = "systemInfo"

func newRootCmd() *cobra.Command {
	var cfgPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:           "readme-tool",
		Short:         "Score, render, export and generate README files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(log.WarnLevel)
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config %s: %w", cfgPath, err)
				}
			}
			systemInfo, err := service.NewSystemInfoServiceFrom(v)
			if err != nil {
				return err
			}
			cmd.SetContext(contextWithSystemInfo(cmd, systemInfo))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json), environment variables take precedence")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newTemplatesCmd())
	cmd.AddCommand(newLicenseCmd())
	cmd.AddCommand(newGenerateCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// readMarkdown reads the file named by the first argument, or stdin when it is absent or "-".
func readMarkdown(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(b), nil
}

func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written %s\n", path)
	return nil
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
