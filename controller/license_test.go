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
	"time"

	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLicense(t *testing.T) {
	c := &licenseControllerImpl{
		licenseService: service.NewLicenseService(),
		now:            func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "explicit year", body: `{"owner": "octo", "year": 2020}`, expected: "Copyright (c) 2020 octo"},
		{name: "current year", body: `{"owner": "octo"}`, expected: "Copyright (c) 2026 octo"},
		{name: "no owner", body: `{}`, expected: "Copyright (c) 2026 Project Owner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			c.GenerateLicense(rec, httptest.NewRequest(http.MethodPost, "/api/v1/license", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp view.LicenseResp
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.License, tt.expected)
			assert.True(t, strings.HasPrefix(resp.License, "MIT License"))
		})
	}
}

func TestListTemplates(t *testing.T) {
	templates, err := service.NewTemplateService()
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	NewTemplateController(templates).ListTemplates(rec, httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp view.ReadmeTemplates
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	ids := make([]string, 0)
	for _, tmpl := range resp.Templates {
		ids = append(ids, tmpl.Id)
		assert.Empty(t, tmpl.Prompt)
	}
	assert.Subset(t, ids, []string{"attractive", "detailed", "minimal", "showcase", "custom"})
}

func TestHealth(t *testing.T) {
	h := NewHealthController()

	rec := httptest.NewRecorder()
	h.HandleLiveRequest(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleReadyRequest(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h.SetReady()
	rec = httptest.NewRecorder()
	h.HandleReadyRequest(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
