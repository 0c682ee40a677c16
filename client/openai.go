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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"
)

type LLMClient interface {
	GenerateReadme(ctx context.Context, prompt string) (string, error)
	GenerateSuggestions(ctx context.Context, prompt string) ([]view.ReadmeSuggestion, error)
	ValidateApiKey(ctx context.Context) error
	UpdateModel(model string) error
	GetModel() string
}

const (
	readmeTemperature     = 0.7
	readmeTopP            = 0.95
	readmeMaxTokens       = 8192
	suggestionsMaxTokens  = 1000
	validationPrompt      = "Hello"
	validationMaxTokens   = 16
	unknownLLMErrorDetail = "Unknown error"
)

func NewOpenaiClient(apiKey string, model string, baseUrl string, extraOpts ...option.RequestOption) (LLMClient, error) {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		return nil, errors.New("openai: api key is required")
	}

	if baseUrl != "" {
		opts = append(opts, option.WithBaseURL(baseUrl))
	}

	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai: model is required")
	}

	cl := http.Client{Timeout: time.Second * 300}
	opts = append(opts, option.WithHTTPClient(&cl))
	opts = append(opts, extraOpts...)

	return &oaiClientImpl{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

type oaiClientImpl struct {
	client openai.Client

	mutex sync.RWMutex
	model openai.ChatModel
}

var SuggestionsOutputResponseSchema = GenerateSchema[view.SuggestionsOutput]()

func (l *oaiClientImpl) GenerateReadme(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	model := l.GetModel()
	log.Infof("run README generation with model %s", model)

	chat, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       model,
		Temperature: openai.Float(readmeTemperature),
		TopP:        openai.Float(readmeTopP),
		MaxTokens:   openai.Int(readmeMaxTokens),
	})
	log.Infof("finished README generation, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return "", mapLLMError(err)
	}
	if len(chat.Choices) == 0 {
		return "", invalidLLMResponse("no choices returned")
	}
	return chat.Choices[0].Message.Content, nil
}

func (l *oaiClientImpl) GenerateSuggestions(ctx context.Context, prompt string) ([]view.ReadmeSuggestion, error) {
	start := time.Now()

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   "readme_suggestions",
		Schema: SuggestionsOutputResponseSchema,
		Strict: openai.Bool(true),
	}

	chat, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model:     l.GetModel(),
		MaxTokens: openai.Int(suggestionsMaxTokens),
	})
	log.Debugf("finished suggestions generation, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return nil, mapLLMError(err)
	}
	if len(chat.Choices) == 0 {
		return nil, invalidLLMResponse("no choices returned")
	}

	var result view.SuggestionsOutput
	if err = json.Unmarshal([]byte(stripJsonFence(chat.Choices[0].Message.Content)), &result); err != nil {
		return nil, invalidLLMResponse(err.Error())
	}
	return result.Suggestions, nil
}

func (l *oaiClientImpl) ValidateApiKey(ctx context.Context) error {
	_, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(validationPrompt),
		},
		Model:     l.GetModel(),
		MaxTokens: openai.Int(validationMaxTokens),
	})
	if err != nil {
		log.Errorf("LLM api key validation failed: %v", err)
		return &exception.CustomError{
			Status:  http.StatusFailedDependency,
			Code:    exception.LLMNotConfigured,
			Message: exception.LLMNotConfiguredMsg,
			Debug:   err.Error(),
		}
	}
	return nil
}

func (l *oaiClientImpl) UpdateModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "model"},
		}
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	log.Infof("LLM model changed from %s to %s", l.model, model)
	l.model = model
	return nil
}

func (l *oaiClientImpl) GetModel() string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.model
}

func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

func mapLLMError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to call LLM: %w", err)
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		return &exception.CustomError{
			Status:  http.StatusBadGateway,
			Code:    exception.LLMInvalidRequest,
			Message: exception.LLMInvalidRequestMsg,
			Debug:   apiErr.Message,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &exception.CustomError{
			Status:  http.StatusFailedDependency,
			Code:    exception.LLMAccessDenied,
			Message: exception.LLMAccessDeniedMsg,
			Debug:   apiErr.Message,
		}
	case http.StatusTooManyRequests:
		return &exception.CustomError{
			Status:  http.StatusTooManyRequests,
			Code:    exception.LLMRateLimitExceeded,
			Message: exception.LLMRateLimitExceededMsg,
		}
	}
	message := apiErr.Message
	if message == "" {
		message = unknownLLMErrorDetail
	}
	return &exception.CustomError{
		Status:  http.StatusBadGateway,
		Code:    exception.LLMError,
		Message: exception.LLMErrorMsg,
		Params:  map[string]interface{}{"code": strconv.Itoa(apiErr.StatusCode), "message": message},
	}
}

func invalidLLMResponse(debug string) error {
	return &exception.CustomError{
		Status:  http.StatusBadGateway,
		Code:    exception.LLMInvalidResponse,
		Message: exception.LLMInvalidResponseMsg,
		Debug:   debug,
	}
}

// Some OpenAI compatible backends wrap structured output into a ```json fence.
func stripJsonFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
