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
	"net/http"
	"strings"
	"time"

	"github.com/Netcracker/qubership-readme-generator/client"
	"github.com/Netcracker/qubership-readme-generator/entity"
	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/markdown"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/utils"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const shortReadmeThreshold = 1000

type ReadmeService interface {
	GenerateReadme(ctx context.Context, req view.GenerateReadmeReq) (*view.GeneratedReadme, error)
}

type ReadmeServiceConfig struct {
	ScoringMode     view.ScoringMode
	ValidateLLMKey  bool
	PersistHistory  bool
	CurrentTimeFunc func() time.Time
}

func NewReadmeService(llmClient client.LLMClient,
	repoDataService RepositoryDataService,
	promptService PromptService,
	licenseService LicenseService,
	historyService HistoryService,
	cfg ReadmeServiceConfig) ReadmeService {
	if cfg.CurrentTimeFunc == nil {
		cfg.CurrentTimeFunc = time.Now
	}
	return &readmeServiceImpl{
		llmClient:       llmClient,
		repoDataService: repoDataService,
		promptService:   promptService,
		licenseService:  licenseService,
		historyService:  historyService,
		cfg:             cfg,
	}
}

type readmeServiceImpl struct {
	llmClient       client.LLMClient
	repoDataService RepositoryDataService
	promptService   PromptService
	licenseService  LicenseService
	historyService  HistoryService
	cfg             ReadmeServiceConfig
}

func (r readmeServiceImpl) GenerateReadme(ctx context.Context, req view.GenerateReadmeReq) (*view.GeneratedReadme, error) {
	start := time.Now()
	if err := validateGenerateReq(req); err != nil {
		return nil, err
	}
	coords, err := ExtractRepoInfo(req.GithubUrl)
	if err != nil {
		return nil, err
	}
	if r.llmClient == nil {
		return nil, llmNotConfigured()
	}
	log.Infof("Starting README generation for %s/%s with template %s", coords.Owner, coords.Repo, req.Template)

	if r.cfg.ValidateLLMKey {
		if err = r.llmClient.ValidateApiKey(ctx); err != nil {
			return nil, err
		}
	}

	data, err := r.repoDataService.FetchRepoData(ctx, coords.Owner, coords.Repo)
	if err != nil {
		return nil, err
	}

	prompt, err := r.promptService.BuildReadmePrompt(*data, req.Template, req.CustomPrompt)
	if err != nil {
		return nil, err
	}

	md, err := r.llmClient.GenerateReadme(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(md) == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusBadGateway,
			Code:    exception.EmptyReadme,
			Message: exception.EmptyReadmeMsg,
		}
	}
	if len(md) < shortReadmeThreshold {
		log.Warnf("Generated README for %s/%s is shorter than expected (%d chars), but proceeding", coords.Owner, coords.Repo, len(md))
	}

	now := r.cfg.CurrentTimeFunc()
	result := &view.GeneratedReadme{
		Id:          uuid.NewString(),
		Repository:  data.Repo,
		Template:    strings.ToLower(strings.TrimSpace(req.Template)),
		Markdown:    md,
		Quality:     markdown.ScoreDocumentWithMode(md, r.cfg.ScoringMode),
		Suggestions: make([]view.ReadmeSuggestion, 0),
		Fallback:    data.Fallback,
		CreatedAt:   now,
	}

	if boolOrDefault(req.WithSuggestions, true) {
		result.Suggestions = r.generateSuggestions(ctx, *data)
	}
	if boolOrDefault(req.GenerateLicense, true) {
		result.License = r.licenseService.GenerateMITLicense(data.Repo, now.Year())
	}

	if r.cfg.PersistHistory && r.historyService != nil {
		err = r.historyService.SaveGeneration(ctx, entity.Generation{
			Id:          result.Id,
			Owner:       coords.Owner,
			Repo:        coords.Repo,
			Template:    result.Template,
			Markdown:    result.Markdown,
			License:     result.License,
			Score:       result.Quality.Score,
			Metrics:     result.Quality.Metrics,
			ScoringMode: r.cfg.ScoringMode,
			Fallback:    result.Fallback,
			Checksum:    utils.GetEncodedChecksum(result.Markdown),
			CreatedBy:   secctx.GetUserId(ctx),
			CreatedAt:   now,
		})
		if err != nil {
			log.Errorf("Failed to store README generation %s: %s", result.Id, err.Error())
		}
	}

	log.Infof("README for %s/%s generated with score %d, it took %dms", coords.Owner, coords.Repo, result.Quality.Score, time.Since(start).Milliseconds())
	return result, nil
}

// suggestions are optional, a failure only loses them
func (r readmeServiceImpl) generateSuggestions(ctx context.Context, data view.RepositoryData) []view.ReadmeSuggestion {
	prompt, err := r.promptService.BuildSuggestionsPrompt(data)
	if err != nil {
		log.Errorf("Failed to build suggestions prompt: %s", err.Error())
		return make([]view.ReadmeSuggestion, 0)
	}
	suggestions, err := r.llmClient.GenerateSuggestions(ctx, prompt)
	if err != nil {
		log.Errorf("Failed to generate suggestions: %s", err.Error())
		return make([]view.ReadmeSuggestion, 0)
	}
	if suggestions == nil {
		return make([]view.ReadmeSuggestion, 0)
	}
	return suggestions
}

func validateGenerateReq(req view.GenerateReadmeReq) error {
	var missing []string
	if strings.TrimSpace(req.GithubUrl) == "" {
		missing = append(missing, "githubUrl")
	}
	if strings.TrimSpace(req.Template) == "" {
		missing = append(missing, "template")
	}
	if len(missing) > 0 {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": strings.Join(missing, ", ")},
		}
	}
	return nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
