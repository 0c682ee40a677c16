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

	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type LicenseController interface {
	GenerateLicense(w http.ResponseWriter, r *http.Request)
}

func NewLicenseController(licenseService service.LicenseService) LicenseController {
	return &licenseControllerImpl{licenseService: licenseService, now: time.Now}
}

type licenseControllerImpl struct {
	licenseService service.LicenseService
	now            func() time.Time
}

func (l licenseControllerImpl) GenerateLicense(w http.ResponseWriter, r *http.Request) {
	var req view.LicenseReq
	if err := readJsonBody(w, r, &req); err != nil {
		respondWithError(w, "Failed to read request", err)
		return
	}
	if req.Year <= 0 {
		req.Year = l.now().Year()
	}
	respondWithJson(w, http.StatusOK, view.LicenseResp{License: l.licenseService.GenerateMITLicenseFor(req.Owner, req.Year)})
}
