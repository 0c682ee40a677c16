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

package view

import "time"

type GenerateReadmeReq struct {
	GithubUrl       string `json:"githubUrl"`
	Template        string `json:"template"`
	CustomPrompt    string `json:"customPrompt,omitempty"`
	GenerateLicense *bool  `json:"generateLicense,omitempty"`
	WithSuggestions *bool  `json:"withSuggestions,omitempty"`
}

type GeneratedReadme struct {
	Id          string             `json:"id"`
	Repository  GithubRepository   `json:"repository"`
	Template    string             `json:"template"`
	Markdown    string             `json:"markdown"`
	Quality     QualityResult      `json:"quality"`
	License     string             `json:"license,omitempty"`
	Suggestions []ReadmeSuggestion `json:"suggestions"`
	Fallback    bool               `json:"fallback,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type MarkdownReq struct {
	Markdown string `json:"markdown"`
}

type RenderReadmeResp struct {
	Html string `json:"html"`
}

type LicenseReq struct {
	Owner string `json:"owner"`
	Year  int    `json:"year,omitempty"`
}

type LicenseResp struct {
	License string `json:"license"`
}
