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
	"time"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type CleanupController interface {
	ClearHistory(w http.ResponseWriter, r *http.Request)
}

type cleanupControllerImpl struct {
	cleanupService       service.CleanupService
	authorizationService service.AuthorizationService
}

func NewCleanupController(cleanupService service.CleanupService, authorizationService service.AuthorizationService) CleanupController {
	return &cleanupControllerImpl{
		cleanupService:       cleanupService,
		authorizationService: authorizationService,
	}
}

func (c cleanupControllerImpl) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	sufficientPrivileges, err := c.authorizationService.HasHistoryManagementPermission(ctx)
	if err != nil {
		respondWithError(w, "Failed to check permissions", err)
		return
	}
	if !sufficientPrivileges {
		RespondWithCustomError(w, insufficientPrivileges())
		return
	}

	olderThanStr := r.URL.Query().Get("olderThan")
	if olderThanStr == "" {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "olderThan"},
		})
		return
	}
	olderThan, err := time.ParseDuration(olderThanStr)
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "olderThan", "value": olderThanStr},
			Debug:   err.Error(),
		})
		return
	}

	deleted, err := c.cleanupService.ClearHistory(ctx, olderThan)
	if err != nil {
		respondWithError(w, "Failed to clear README history", err)
		return
	}
	respondWithJson(w, http.StatusOK, view.HistoryCleanupResp{Deleted: deleted})
}
