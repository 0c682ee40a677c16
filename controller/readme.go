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

	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type ReadmeController interface {
	GenerateReadme(w http.ResponseWriter, r *http.Request)
}

func NewReadmeController(readmeService service.ReadmeService) ReadmeController {
	return &readmeControllerImpl{readmeService: readmeService}
}

type readmeControllerImpl struct {
	readmeService service.ReadmeService
}

func (c readmeControllerImpl) GenerateReadme(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)

	var req view.GenerateReadmeReq
	if err := readJsonBody(w, r, &req); err != nil {
		respondWithError(w, "Failed to read request", err)
		return
	}

	result, err := c.readmeService.GenerateReadme(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to generate README", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}
