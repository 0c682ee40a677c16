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
	"text/tabwriter"
	"time"

	"github.com/Netcracker/qubership-readme-generator/client"
	"github.com/Netcracker/qubership-readme-generator/db"
	"github.com/Netcracker/qubership-readme-generator/repository"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/spf13/cobra"
)

const cliRepoCacheCapacity = 64

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List README templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templateService, err := service.NewTemplateService()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOMPLEXITY\tDESCRIPTION")
			for _, tmpl := range templateService.ListTemplates() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tmpl.Id, tmpl.Name, tmpl.Complexity, tmpl.Description)
			}
			return tw.Flush()
		},
	}
}

func newLicenseCmd() *cobra.Command {
	var owner string
	var year int
	var output string

	cmd := &cobra.Command{
		Use:   "license",
		Short: "Print an MIT license",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year <= 0 {
				year = time.Now().Year()
			}
			license := service.NewLicenseService().GenerateMITLicenseFor(owner, year)
			return writeOutput(cmd, output, []byte(ensureTrailingNewline(license)))
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "copyright holder")
	cmd.Flags().IntVar(&year, "year", 0, "copyright year, current year when omitted")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var req view.GenerateReadmeReq
	var noLicense, noSuggestions, noHistory bool
	var output, licenseOutput, githubToken string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a README for a GitHub repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			systemInfo := getSystemInfo(cmd)
			if systemInfo.GetLLMApiKey() == "" {
				return fmt.Errorf("%s is not set", service.LLM_API_KEY)
			}
			llmClient, err := client.NewOpenaiClient(systemInfo.GetLLMApiKey(), systemInfo.GetLLMModel(), systemInfo.GetLLMBaseUrl())
			if err != nil {
				return err
			}

			var historyService service.HistoryService
			if !noHistory {
				sqlDB, err := db.OpenSqlite(systemInfo.GetSqlitePath())
				if err != nil {
					return err
				}
				defer sqlDB.Close()
				historyService = service.NewHistoryService(repository.NewSqliteGenerationRepository(sqlDB))
			}

			templateService, err := service.NewTemplateService()
			if err != nil {
				return err
			}
			githubClient := client.NewGithubClient(systemInfo.GetGithubApiUrl(), systemInfo.GetGithubToken())
			repoCache := client.NewLocalRepoDataCache(cliRepoCacheCapacity, systemInfo.GetRepoCacheTTL())
			readmeService := service.NewReadmeService(llmClient,
				service.NewRepositoryDataService(githubClient, repoCache, systemInfo.IsGithubFallbackEnabled()),
				service.NewPromptService(templateService),
				service.NewLicenseService(),
				historyService,
				service.ReadmeServiceConfig{
					ScoringMode:    systemInfo.GetScoringMode(),
					ValidateLLMKey: systemInfo.IsLLMKeyValidationEnabled(),
					PersistHistory: !noHistory,
				})

			generateLicense := !noLicense
			withSuggestions := !noSuggestions
			req.GenerateLicense = &generateLicense
			req.WithSuggestions = &withSuggestions

			ctx := secctx.MakeSysadminContext(cmd.Context())
			if githubToken != "" {
				ctx = secctx.WithGithubToken(ctx, githubToken)
			}
			result, err := readmeService.GenerateReadme(ctx, req)
			if err != nil {
				return err
			}

			if err = writeOutput(cmd, output, []byte(ensureTrailingNewline(result.Markdown))); err != nil {
				return err
			}
			if result.License != "" && licenseOutput != "" {
				if err = writeOutput(cmd, licenseOutput, []byte(ensureTrailingNewline(result.License))); err != nil {
					return err
				}
			}
			return printSummary(cmd, result)
		},
	}
	cmd.Flags().StringVar(&req.GithubUrl, "url", "", "GitHub repository URL")
	cmd.Flags().StringVarP(&req.Template, "template", "t", "attractive", "template id, see the templates command")
	cmd.Flags().StringVar(&req.CustomPrompt, "prompt", "", "instructions for the custom template")
	cmd.Flags().BoolVar(&noLicense, "no-license", false, "skip the MIT license")
	cmd.Flags().BoolVar(&noSuggestions, "no-suggestions", false, "skip improvement suggestions")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not store the result in the local history")
	cmd.Flags().StringVarP(&output, "output", "o", "README.md", "README output file, - for stdout")
	cmd.Flags().StringVar(&licenseOutput, "license-output", "", "license output file, the license is not written when empty")
	cmd.Flags().StringVar(&githubToken, "github-token", "", "GitHub token for this run, overrides GITHUB_TOKEN")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func printSummary(cmd *cobra.Command, result *view.GeneratedReadme) error {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Generation %s, quality score %d/100\n", result.Id, result.Quality.Score)
	if result.Fallback {
		fmt.Fprintln(w, "GitHub data was not available, sample repository data was used")
	}
	if len(result.Suggestions) == 0 {
		return nil
	}
	b, err := json.MarshalIndent(result.Suggestions, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Suggestions:\n%s\n", b)
	return nil
}
