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
	"sync/atomic"
)

type HealthController interface {
	HandleLiveRequest(w http.ResponseWriter, r *http.Request)
	HandleReadyRequest(w http.ResponseWriter, r *http.Request)
	SetReady()
}

func NewHealthController() HealthController {
	return &healthControllerImpl{}
}

type healthControllerImpl struct {
	ready atomic.Bool
}

func (h *healthControllerImpl) HandleLiveRequest(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *healthControllerImpl) HandleReadyRequest(w http.ResponseWriter, r *http.Request) {
	if h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *healthControllerImpl) SetReady() {
	h.ready.Store(true)
}
