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
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/markdown"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type MarkdownController interface {
	ScoreMarkdown(w http.ResponseWriter, r *http.Request)
	RenderMarkdown(w http.ResponseWriter, r *http.Request)
	ExportMarkdown(w http.ResponseWriter, r *http.Request)
}

func NewMarkdownController(exportService service.ExportService, defaultMode view.ScoringMode) MarkdownController {
	return &markdownControllerImpl{exportService: exportService, defaultMode: defaultMode}
}

type markdownControllerImpl struct {
	exportService service.ExportService
	defaultMode   view.ScoringMode
}

func (m markdownControllerImpl) ScoreMarkdown(w http.ResponseWriter, r *http.Request) {
	mode := m.defaultMode
	if modeStr := r.URL.Query().Get("mode"); modeStr != "" {
		mode = view.ScoringMode(strings.ToLower(modeStr))
		if !mode.IsValid() {
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidParameterValueMsg,
				Params:  map[string]interface{}{"param": "mode", "value": modeStr},
			})
			return
		}
	}

	md, err := readMarkdown(w, r)
	if err != nil {
		respondWithError(w, "Failed to read markdown", err)
		return
	}
	respondWithJson(w, http.StatusOK, markdown.ScoreDocumentWithMode(md, mode))
}

func (m markdownControllerImpl) RenderMarkdown(w http.ResponseWriter, r *http.Request) {
	md, err := readMarkdown(w, r)
	if err != nil {
		respondWithError(w, "Failed to read markdown", err)
		return
	}
	respondWithJson(w, http.StatusOK, view.RenderReadmeResp{Html: markdown.RenderToHtml(md)})
}

func (m markdownControllerImpl) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	md, err := readMarkdown(w, r)
	if err != nil {
		respondWithError(w, "Failed to read markdown", err)
		return
	}
	file, err := m.exportService.Export(md, view.ExportFormat(r.URL.Query().Get("format")))
	if err != nil {
		respondWithError(w, "Failed to export markdown", err)
		return
	}
	respondWithFile(w, file)
}

// readMarkdown accepts either a JSON document with a markdown field or the raw text.
func readMarkdown(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req view.MarkdownReq
		if err := readJsonBody(w, r, &req); err != nil {
			return "", err
		}
		return req.Markdown, nil
	}
	body, err := readBody(w, r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func respondWithFile(w http.ResponseWriter, file *view.ExportedFile) {
	w.Header().Set("Content-Type", file.MimeType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}
