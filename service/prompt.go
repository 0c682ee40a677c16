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

package service

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/tmc/langchaingo/prompts"
)

type PromptService interface {
	BuildReadmePrompt(data view.RepositoryData, templateId string, customPrompt string) (string, error)
	BuildSuggestionsPrompt(data view.RepositoryData) (string, error)
}

func NewPromptService(templateService TemplateService) PromptService {
	return &promptServiceImpl{
		templateService:   templateService,
		readmePrompt:      prompts.NewPromptTemplate(readmePromptTemplate, readmePromptVars),
		suggestionsPrompt: prompts.NewPromptTemplate(suggestionsPromptTemplate, suggestionsPromptVars),
	}
}

type promptServiceImpl struct {
	templateService   TemplateService
	readmePrompt      prompts.PromptTemplate
	suggestionsPrompt prompts.PromptTemplate
}

const maxListedFiles = 20

var readmePromptVars = []string{
	"name", "description", "language", "languages", "stars", "forks", "homepage",
	"htmlUrl", "cloneUrl", "files", "template", "templateUpper", "requirements", "customInstructions",
}

const readmePromptTemplate = `You are an expert technical writer creating a comprehensive README.md file for a GitHub repository.

Repository Information:
- Name: {{.name}}
- Description: {{.description}}
- Primary Language: {{.language}}
- All Languages: {{.languages}}
- Stars: {{.stars}}
- Forks: {{.forks}}
- Homepage: {{.homepage}}
- Repository URL: {{.htmlUrl}}
- Clone URL: {{.cloneUrl}}
- Files: {{.files}}

Template Style: {{.template}}

REQUIREMENTS FOR {{.templateUpper}} TEMPLATE:
{{.requirements}}
{{- if .customInstructions}}
CUSTOM INSTRUCTIONS:
{{.customInstructions}}
{{- end}}

CRITICAL INSTRUCTIONS:
1. Generate a COMPREHENSIVE README that is AT LEAST 400-600 lines long
2. Include REAL, DETAILED content - not just placeholders
3. Create multiple detailed code examples with explanations
4. Add substantial content to each section - no short paragraphs
5. Include proper markdown formatting with headers, lists, code blocks, tables
6. Generate realistic examples based on the repository's programming language
7. Create detailed installation instructions for multiple platforms
8. Include comprehensive API documentation if applicable
9. Add troubleshooting section with real scenarios
10. Make it production-ready and professional

STRUCTURE (include ALL sections with substantial content):
- Project title with badges
- Detailed description (multiple paragraphs)
- Table of contents
- Features (comprehensive list)
- Installation (multiple methods)
- Usage (multiple examples with code)
- API Reference (if applicable)
- Configuration
- Examples/Tutorials
- Testing
- Contributing
- Troubleshooting
- FAQ
- License
- Support/Contact

Generate ONLY the markdown content. Make it comprehensive, detailed, and professional.
`

var suggestionsPromptVars = []string{"name", "language", "description"}

const suggestionsPromptTemplate = `Based on this repository data, suggest 5 improvements for the README:
- Name: {{.name}}
- Language: {{.language}}
- Description: {{.description}}

Provide specific, actionable suggestions in JSON format:
{"suggestions": [{"title": "suggestion title", "description": "detailed description", "priority": "high/medium/low"}]}`

func (p promptServiceImpl) BuildReadmePrompt(data view.RepositoryData, templateId string, customPrompt string) (string, error) {
	tmpl, err := p.templateService.GetTemplate(templateId)
	if err != nil {
		return "", err
	}
	customPrompt = strings.TrimSpace(customPrompt)
	if tmpl.Id == view.CustomTemplateId && customPrompt == "" {
		return "", &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.CustomPromptMissing,
			Message: exception.CustomPromptMissingMsg,
		}
	}
	if tmpl.Id != view.CustomTemplateId {
		customPrompt = ""
	}

	repo := data.Repo
	values := map[string]any{
		"name":               repo.Name,
		"description":        orDefault(repo.Description, "No description provided"),
		"language":           orDefault(repo.Language, "Not specified"),
		"languages":          orDefault(strings.Join(sortedLanguages(data.Languages), ", "), "Unknown"),
		"stars":              strconv.Itoa(repo.StargazersCount),
		"forks":              strconv.Itoa(repo.ForksCount),
		"homepage":           orDefault(repo.Homepage, "None"),
		"htmlUrl":            orDefault(repo.HtmlUrl, fmt.Sprintf("https://github.com/owner/%s", repo.Name)),
		"cloneUrl":           orDefault(repo.CloneUrl, fmt.Sprintf("https://github.com/owner/%s.git", repo.Name)),
		"files":              listFiles(data.Contents),
		"template":           tmpl.Id,
		"templateUpper":      strings.ToUpper(tmpl.Id),
		"requirements":       strings.TrimSpace(tmpl.Prompt),
		"customInstructions": customPrompt,
	}
	prompt, err := p.readmePrompt.Format(values)
	if err != nil {
		return "", fmt.Errorf("failed to render README prompt: %w", err)
	}
	return prompt, nil
}

func (p promptServiceImpl) BuildSuggestionsPrompt(data view.RepositoryData) (string, error) {
	prompt, err := p.suggestionsPrompt.Format(map[string]any{
		"name":        data.Repo.Name,
		"language":    data.Repo.Language,
		"description": data.Repo.Description,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render suggestions prompt: %w", err)
	}
	return prompt, nil
}

func listFiles(contents []view.GithubContentItem) string {
	names := make([]string, 0, maxListedFiles)
	for i, item := range contents {
		if i == maxListedFiles {
			break
		}
		names = append(names, item.Name)
	}
	result := strings.Join(names, ", ")
	if len(contents) > maxListedFiles {
		result += " and more..."
	}
	return result
}

// sortedLanguages orders languages by byte count, the order GitHub reports them in.
func sortedLanguages(languages view.GithubLanguages) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
