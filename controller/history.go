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
	"net/http"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type HistoryController interface {
	ListGenerations(w http.ResponseWriter, r *http.Request)
	GetGeneration(w http.ResponseWriter, r *http.Request)
	DeleteGeneration(w http.ResponseWriter, r *http.Request)
	ExportGeneration(w http.ResponseWriter, r *http.Request)
}

func NewHistoryController(historyService service.HistoryService,
	exportService service.ExportService,
	authorizationService service.AuthorizationService) HistoryController {
	return &historyControllerImpl{
		historyService:       historyService,
		exportService:        exportService,
		authorizationService: authorizationService,
	}
}

type historyControllerImpl struct {
	historyService       service.HistoryService
	exportService        service.ExportService
	authorizationService service.AuthorizationService
}

func (h historyControllerImpl) ListGenerations(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)

	limit, err := getIntQueryParam(r, "limit", service.DefaultHistoryLimit)
	if err != nil {
		respondWithError(w, "Failed to read limit", err)
		return
	}
	if limit < 1 || limit > service.MaxHistoryLimit {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "limit", "value": limit},
		})
		return
	}

	result, err := h.historyService.ListGenerations(ctx, limit)
	if err != nil {
		respondWithError(w, "Failed to list README generations", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (h historyControllerImpl) GetGeneration(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	generationId, err := getUnescapedStringParam(r, "generationId")
	if err != nil {
		respondWithError(w, "Failed to read generation id", err)
		return
	}

	result, err := h.historyService.GetGeneration(ctx, generationId)
	if err != nil {
		respondWithError(w, "Failed to get README generation", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (h historyControllerImpl) DeleteGeneration(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	sufficientPrivileges, err := h.authorizationService.HasHistoryManagementPermission(ctx)
	if err != nil {
		respondWithError(w, "Failed to check permissions", err)
		return
	}
	if !sufficientPrivileges {
		RespondWithCustomError(w, insufficientPrivileges())
		return
	}

	generationId, err := getUnescapedStringParam(r, "generationId")
	if err != nil {
		respondWithError(w, "Failed to read generation id", err)
		return
	}
	if err = h.historyService.DeleteGeneration(ctx, generationId); err != nil {
		respondWithError(w, "Failed to delete README generation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h historyControllerImpl) ExportGeneration(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	generationId, err := getUnescapedStringParam(r, "generationId")
	if err != nil {
		respondWithError(w, "Failed to read generation id", err)
		return
	}

	generation, err := h.historyService.GetGeneration(ctx, generationId)
	if err != nil {
		respondWithError(w, "Failed to get README generation", err)
		return
	}
	file, err := h.exportService.Export(generation.Markdown, view.ExportFormat(r.URL.Query().Get("format")))
	if err != nil {
		respondWithError(w, "Failed to export README generation", err)
		return
	}
	respondWithFile(w, file)
}
