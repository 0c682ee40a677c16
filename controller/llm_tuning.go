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
	"strings"

	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type LLMTuningController interface {
	GetModel(w http.ResponseWriter, r *http.Request)
	UpdateModel(w http.ResponseWriter, r *http.Request)
}

func NewLLMTuningController(modelService service.LLMModelService, authorizationService service.AuthorizationService) LLMTuningController {
	return &llmTuningControllerImpl{modelService: modelService, authorizationService: authorizationService}
}

type llmTuningControllerImpl struct {
	modelService         service.LLMModelService
	authorizationService service.AuthorizationService
}

func (l llmTuningControllerImpl) GetModel(w http.ResponseWriter, r *http.Request) {
	model, err := l.modelService.GetModel()
	if err != nil {
		respondWithError(w, "Failed to get model", err)
		return
	}
	respondWithJson(w, http.StatusOK, view.LLMModelResp{Model: model})
}

func (l llmTuningControllerImpl) UpdateModel(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	sufficientPrivileges, err := l.authorizationService.HasLLMManagementPermission(ctx)
	if err != nil {
		respondWithError(w, "Failed to check permissions", err)
		return
	}
	if !sufficientPrivileges {
		RespondWithCustomError(w, insufficientPrivileges())
		return
	}

	var req view.UpdateModelReq
	if err = readJsonBody(w, r, &req); err != nil {
		respondWithError(w, "Failed to read request", err)
		return
	}

	err = l.modelService.UpdateModel(ctx, req.Model)
	if err != nil {
		respondWithError(w, "Failed to update model", err)
		return
	}
	respondWithJson(w, http.StatusOK, view.LLMModelResp{Model: strings.TrimSpace(req.Model)})
}
