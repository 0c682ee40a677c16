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

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readmeServiceMock struct {
	result      *view.GeneratedReadme
	err         error
	req         view.GenerateReadmeReq
	githubToken string
}

func (m *readmeServiceMock) GenerateReadme(ctx context.Context, req view.GenerateReadmeReq) (*view.GeneratedReadme, error) {
	m.req = req
	m.githubToken = secctx.GetGithubToken(ctx)
	return m.result, m.err
}

func TestGenerateReadme(t *testing.T) {
	mock := &readmeServiceMock{result: &view.GeneratedReadme{Id: "id-1", Markdown: "# hello"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/readme",
		strings.NewReader(`{"githubUrl": "https://github.com/octo/hello", "template": "minimal", "generateLicense": false}`))
	req.Header.Set(secctx.GithubTokenHeader, " ghp_token ")
	rec := httptest.NewRecorder()

	NewReadmeController(mock).GenerateReadme(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result view.GeneratedReadme
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "id-1", result.Id)
	assert.Equal(t, "https://github.com/octo/hello", mock.req.GithubUrl)
	require.NotNil(t, mock.req.GenerateLicense)
	assert.False(t, *mock.req.GenerateLicense)
	assert.Nil(t, mock.req.WithSuggestions)
	assert.Equal(t, "ghp_token", mock.githubToken)
}

func TestGenerateReadmeBadBody(t *testing.T) {
	rec := httptest.NewRecorder()

	NewReadmeController(&readmeServiceMock{}).GenerateReadme(rec, httptest.NewRequest(http.MethodPost, "/api/v1/readme", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, exception.BadRequestBody, decodeError(t, rec).Code)
}

func TestGenerateReadmeErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name: "custom error",
			err: &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.RepositoryNotFound,
				Message: exception.RepositoryNotFoundMsg,
				Params:  map[string]interface{}{"owner": "octo", "repo": "gone"},
			},
			status:  http.StatusNotFound,
			message: "Repository octo/gone not found. Please check the URL.",
		},
		{
			name:    "wrapped custom error",
			err:     errors.Join(errors.New("ctx"), &exception.CustomError{Status: http.StatusTooManyRequests, Message: exception.GithubRateLimitExceededMsg}),
			status:  http.StatusTooManyRequests,
			message: exception.GithubRateLimitExceededMsg,
		},
		{
			name:    "unexpected error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "Failed to generate README",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/readme", strings.NewReader(`{}`))

			NewReadmeController(&readmeServiceMock{err: tt.err}).GenerateReadme(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
}
