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
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxBodySize = 5 << 20

func respondWithJson(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Failed to marshal response: %s", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, msg string, err error) {
	log.Errorf("%s: %s", msg, err.Error())
	var customError *exception.CustomError
	if errors.As(err, &customError) {
		RespondWithCustomError(w, customError)
		return
	}
	RespondWithCustomError(w, &exception.CustomError{
		Status:  http.StatusInternalServerError,
		Message: msg,
		Debug:   err.Error(),
	})
}

func RespondWithCustomError(w http.ResponseWriter, err *exception.CustomError) {
	log.Debugf("Request failed. Code = %d. Message = %s. Params: %v. Debug: %s", err.Status, err.Message, err.Params, err.Debug)
	err.Message = err.Error()
	respondWithJson(w, err.Status, err)
}

func getUnescapedStringParam(r *http.Request, p string) (string, error) {
	params := mux.Vars(r)
	value, err := url.PathUnescape(params[p])
	if err != nil {
		return "", &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidURLEscape,
			Message: exception.InvalidURLEscapeMsg,
			Params:  map[string]interface{}{"param": p},
			Debug:   err.Error(),
		}
	}
	return value, nil
}

func getIntQueryParam(r *http.Request, p string, def int) (int, error) {
	value := r.URL.Query().Get(p)
	if value == "" {
		return def, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": p, "value": value},
			Debug:   err.Error(),
		}
	}
	return result, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &exception.CustomError{
				Status:  http.StatusRequestEntityTooLarge,
				Code:    exception.RequestBodyTooLarge,
				Message: exception.RequestBodyTooLargeMsg,
				Params:  map[string]interface{}{"limit": maxBytesErr.Limit},
			}
		}
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	return body, nil
}

func readJsonBody(w http.ResponseWriter, r *http.Request, target interface{}) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, target); err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	return nil
}

func insufficientPrivileges() *exception.CustomError {
	return &exception.CustomError{
		Status:  http.StatusForbidden,
		Code:    exception.InsufficientPrivileges,
		Message: exception.InsufficientPrivilegesMsg,
	}
}
