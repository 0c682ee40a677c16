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

package service

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/view"
)

var githubRepoUrlRe = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// ExtractRepoInfo finds owner and repository name in anything that contains
// "github.com/<owner>/<repo>", so scheme, host prefix and trailing path are ignored.
func ExtractRepoInfo(url string) (*view.RepoCoordinates, error) {
	match := githubRepoUrlRe.FindStringSubmatch(url)
	if match == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidRepositoryUrl,
			Message: exception.InvalidRepositoryUrlMsg,
			Params:  map[string]interface{}{"url": url},
		}
	}
	return &view.RepoCoordinates{
		Owner: match[1],
		Repo:  strings.Replace(match[2], ".git", "", 1),
	}, nil
}
