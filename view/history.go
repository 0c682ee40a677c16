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

type GenerationSummary struct {
	Id        string    `json:"id"`
	Owner     string    `json:"owner"`
	Repo      string    `json:"repo"`
	Template  string    `json:"template"`
	Score     int       `json:"score"`
	Fallback  bool      `json:"fallback"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Generations struct {
	Generations []GenerationSummary `json:"generations"`
}

type GenerationDetails struct {
	GenerationSummary
	Markdown string        `json:"markdown"`
	License  string        `json:"license,omitempty"`
	Quality  QualityResult `json:"quality"`
}

type HistoryCleanupResp struct {
	Deleted int `json:"deleted"`
}
