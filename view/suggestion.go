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

type SuggestionsOutput struct {
	Suggestions []ReadmeSuggestion `json:"suggestions"`
}

type ReadmeSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority" jsonschema:"enum=high,enum=medium,enum=low"`
}

const (
	SPHigh   = "high"
	SPMedium = "medium"
	SPLow    = "low"
)
