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
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type llmClientMock struct {
	readme         string
	readmeErr      error
	suggestions    []view.ReadmeSuggestion
	suggestionsErr error
	validateErr    error
	prompts        []string
	model          string
}

func (l *llmClientMock) GenerateReadme(ctx context.Context, prompt string) (string, error) {
	l.prompts = append(l.prompts, prompt)
	return l.readme, l.readmeErr
}

func (l *llmClientMock) GenerateSuggestions(ctx context.Context, prompt string) ([]view.ReadmeSuggestion, error) {
	return l.suggestions, l.suggestionsErr
}

func (l *llmClientMock) ValidateApiKey(ctx context.Context) error {
	return l.validateErr
}

func (l *llmClientMock) UpdateModel(model string) error {
	l.model = model
	return nil
}

func (l *llmClientMock) GetModel() string {
	return l.model
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newReadmeService(t *testing.T, llm *llmClientMock, gh *githubClientMock) (ReadmeService, HistoryService) {
	t.Helper()
	templates, err := NewTemplateService()
	require.NoError(t, err)
	history := newHistoryService(t)
	svc := NewReadmeService(llm, NewRepositoryDataService(gh, nil, true), NewPromptService(templates),
		NewLicenseService(), history, ReadmeServiceConfig{
			ScoringMode:     view.ScoringModeLegacy,
			ValidateLLMKey:  true,
			PersistHistory:  true,
			CurrentTimeFunc: func() time.Time { return fixedNow },
		})
	return svc, history
}

func TestGenerateReadme(t *testing.T) {
	llm := &llmClientMock{
		readme:      "# hello\n\n[docs](https://x)",
		suggestions: []view.ReadmeSuggestion{{Title: "Badges", Priority: view.SPHigh}},
	}
	gh := newGithubMock()
	gh.repo.Owner = &view.GithubOwner{Login: "octo"}
	svc, history := newReadmeService(t, llm, gh)

	result, err := svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{
		GithubUrl: "https://github.com/octo/hello.git",
		Template:  "Minimal",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Id)
	assert.Equal(t, "minimal", result.Template)
	assert.Equal(t, "# hello\n\n[docs](https://x)", result.Markdown)
	assert.Equal(t, view.DocumentMetrics{WordCount: 2, SectionCount: 1, LinkCount: 1}, result.Quality.Metrics)
	assert.Equal(t, 6, result.Quality.Score)
	assert.Len(t, result.Suggestions, 1)
	assert.Contains(t, result.License, "Copyright (c) 2026 octo")
	assert.Equal(t, fixedNow, result.CreatedAt)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "REQUIREMENTS FOR MINIMAL TEMPLATE")

	stored, err := history.GetGeneration(context.Background(), result.Id)
	require.NoError(t, err)
	assert.Equal(t, "octo", stored.Owner)
	assert.Equal(t, "hello", stored.Repo)
	assert.Equal(t, result.Markdown, stored.Markdown)
	assert.Equal(t, result.Quality, stored.Quality)
}

func TestGenerateReadmeOptionalParts(t *testing.T) {
	llm := &llmClientMock{readme: "# hello", suggestionsErr: errors.New("quota")}
	svc, _ := newReadmeService(t, llm, newGithubMock())
	no := false

	result, err := svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{
		GithubUrl:       "github.com/octo/hello",
		Template:        "attractive",
		GenerateLicense: &no,
	})

	require.NoError(t, err)
	assert.Empty(t, result.License)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
}

func TestGenerateReadmeValidation(t *testing.T) {
	svc, _ := newReadmeService(t, &llmClientMock{readme: "# x"}, newGithubMock())

	tests := []struct {
		name string
		req  view.GenerateReadmeReq
		code string
	}{
		{name: "missing fields", req: view.GenerateReadmeReq{}, code: exception.RequiredParamsMissing},
		{name: "invalid url", req: view.GenerateReadmeReq{GithubUrl: "https://gitlab.com/a/b", Template: "minimal"}, code: exception.InvalidRepositoryUrl},
		{name: "unknown template", req: view.GenerateReadmeReq{GithubUrl: "https://github.com/a/b", Template: "fancy"}, code: exception.UnknownTemplate},
		{name: "custom without instructions", req: view.GenerateReadmeReq{GithubUrl: "https://github.com/a/b", Template: "custom"}, code: exception.CustomPromptMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateReadme(context.Background(), tt.req)

			var customErr *exception.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, tt.code, customErr.Code)
			assert.Equal(t, http.StatusBadRequest, customErr.Status)
		})
	}
}

func TestGenerateReadmeMissingFieldsMessage(t *testing.T) {
	svc, _ := newReadmeService(t, &llmClientMock{}, newGithubMock())

	_, err := svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{})

	assert.EqualError(t, err, "Required parameters are missing: githubUrl, template")
}

func TestGenerateReadmeEmptyOutput(t *testing.T) {
	svc, _ := newReadmeService(t, &llmClientMock{readme: " \n\t"}, newGithubMock())

	_, err := svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{GithubUrl: "https://github.com/a/b", Template: "minimal"})

	var customErr *exception.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, exception.EmptyReadme, customErr.Code)
}

func TestGenerateReadmeInvalidKey(t *testing.T) {
	llm := &llmClientMock{validateErr: &exception.CustomError{Status: http.StatusFailedDependency, Code: exception.LLMNotConfigured}}
	gh := newGithubMock()
	svc, _ := newReadmeService(t, llm, gh)

	_, err := svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{GithubUrl: "https://github.com/a/b", Template: "minimal"})

	var customErr *exception.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, exception.LLMNotConfigured, customErr.Code)
	assert.Equal(t, int32(0), gh.calls.Load())
}

func TestGenerateReadmeWithoutLLM(t *testing.T) {
	templates, err := NewTemplateService()
	require.NoError(t, err)
	svc := NewReadmeService(nil, NewRepositoryDataService(newGithubMock(), nil, true), NewPromptService(templates),
		NewLicenseService(), nil, ReadmeServiceConfig{})

	_, err = svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{GithubUrl: "https://github.com/a/b", Template: "minimal"})

	var customErr *exception.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, exception.LLMNotConfigured, customErr.Code)
}

func TestGenerateReadmeFallbackData(t *testing.T) {
	llm := &llmClientMock{readme: strings.Repeat("word ", 300)}
	gh := newGithubMock()
	gh.languagesErr = errors.New("dial tcp: i/o timeout")
	svc, _ := newReadmeService(t, llm, gh)

	result, err := svc.GenerateReadme(context.Background(), view.GenerateReadmeReq{GithubUrl: "https://github.com/octo/hello", Template: "showcase"})

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, "A hello repository", result.Repository.Description)
	assert.Contains(t, result.License, "Copyright (c) 2026 Project Owner")
	assert.Contains(t, llm.prompts[0], "- Files: README.md, package.json, src, .gitignore\n")
}
