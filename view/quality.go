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

type DocumentMetrics struct {
	WordCount      int     `json:"wordCount"`
	SectionCount   int     `json:"sectionCount"`
	CodeBlockCount float64 `json:"codeBlocks"`
	LinkCount      int     `json:"links"`
	BadgeCount     int     `json:"badges"`
}

type QualityResult struct {
	Score   int             `json:"score"`
	Metrics DocumentMetrics `json:"metrics"`
}

type ScoringMode string

const (
	// ScoringModeLegacy keeps the historical formula: split-on-space word count,
	// fractional fence count and images counted as links too.
	ScoringModeLegacy ScoringMode = "legacy"
	// ScoringModeCorrected counts whitespace separated words, whole fence pairs
	// and links that are not images.
	ScoringModeCorrected ScoringMode = "corrected"
)

func (m ScoringMode) IsValid() bool {
	return m == ScoringModeLegacy || m == ScoringModeCorrected
}
