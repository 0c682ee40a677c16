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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/markdown"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarkdown = "# Title\n\nSome **bold** text with [a link](https://example.com)\n\n```go\nfmt.Println()\n```"

func newMarkdownController() MarkdownController {
	return NewMarkdownController(service.NewExportService(), view.ScoringModeLegacy)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) exception.CustomError {
	t.Helper()
	var customErr exception.CustomError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customErr))
	return customErr
}

func TestScoreMarkdown(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		body        string
		expected    view.QualityResult
	}{
		{
			name:     "raw body",
			url:      "/api/v1/quality",
			body:     sampleMarkdown,
			expected: markdown.ScoreDocumentWithMode(sampleMarkdown, view.ScoringModeLegacy),
		},
		{
			name:        "json body",
			url:         "/api/v1/quality",
			contentType: "application/json; charset=utf-8",
			body:        `{"markdown": "# Title\n\nhello world"}`,
			expected:    markdown.ScoreDocumentWithMode("# Title\n\nhello world", view.ScoringModeLegacy),
		},
		{
			name:     "corrected mode",
			url:      "/api/v1/quality?mode=Corrected",
			body:     sampleMarkdown,
			expected: markdown.ScoreDocumentWithMode(sampleMarkdown, view.ScoringModeCorrected),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			newMarkdownController().ScoreMarkdown(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var result view.QualityResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScoreMarkdownInvalidMode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quality?mode=strict", strings.NewReader(sampleMarkdown))
	rec := httptest.NewRecorder()

	newMarkdownController().ScoreMarkdown(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	customErr := decodeError(t, rec)
	assert.Equal(t, exception.InvalidParameterValue, customErr.Code)
	assert.Equal(t, "Value 'strict' is not allowed for parameter mode", customErr.Message)
}

func TestScoreMarkdownBadJson(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quality", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newMarkdownController().ScoreMarkdown(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, exception.BadRequestBody, decodeError(t, rec).Code)
}

func TestRenderMarkdown(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader("# Title"))
	rec := httptest.NewRecorder()

	newMarkdownController().RenderMarkdown(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp view.RenderReadmeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, markdown.RenderToHtml("# Title"), resp.Html)
}

func TestExportMarkdown(t *testing.T) {
	tests := []struct {
		format      string
		filename    string
		contentType string
	}{
		{format: "", filename: "README.md", contentType: "text/markdown; charset=utf-8"},
		{format: "html", filename: "README.html", contentType: "text/html; charset=utf-8"},
		{format: "TXT", filename: "README.txt", contentType: "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/export?format="+tt.format, strings.NewReader(sampleMarkdown))
			rec := httptest.NewRecorder()

			newMarkdownController().ExportMarkdown(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.filename+`"`, rec.Header().Get("Content-Disposition"))
			assert.NotEmpty(t, rec.Body.String())
		})
	}
}

func TestExportMarkdownUnsupportedFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export?format=pdf", strings.NewReader(sampleMarkdown))
	rec := httptest.NewRecorder()

	newMarkdownController().ExportMarkdown(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	customErr := decodeError(t, rec)
	assert.Equal(t, exception.UnsupportedExportFormat, customErr.Code)
	assert.Equal(t, "Export format 'pdf' is not supported", customErr.Message)
}

func TestMarkdownBodyTooLarge(t *testing.T) {
	body := strings.Repeat("a", maxBodySize+1)
	tests := []struct {
		name        string
		contentType string
		handler     func(MarkdownController) http.HandlerFunc
	}{
		{name: "score", handler: func(c MarkdownController) http.HandlerFunc { return c.ScoreMarkdown }},
		{name: "render", handler: func(c MarkdownController) http.HandlerFunc { return c.RenderMarkdown }},
		{name: "export", handler: func(c MarkdownController) http.HandlerFunc { return c.ExportMarkdown }},
		{name: "json_body", contentType: "application/json", handler: func(c MarkdownController) http.HandlerFunc { return c.RenderMarkdown }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/"+tt.name, strings.NewReader(body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			tt.handler(newMarkdownController())(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			customErr := decodeError(t, rec)
			assert.Equal(t, exception.RequestBodyTooLarge, customErr.Code)
			assert.Equal(t, "Request body exceeds the limit of 5242880 bytes", customErr.Message)
		})
	}
}

func TestMarkdownBodyAtLimit(t *testing.T) {
	body := strings.Repeat("a", maxBodySize)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quality", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newMarkdownController().ScoreMarkdown(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result view.QualityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, markdown.ScoreDocument(body), result)
}
