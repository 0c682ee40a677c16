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

// Package markdown holds the pure README processing used by the service:
// quality scoring and the restricted Markdown to HTML conversion.
package markdown

import (
	"math"
	"regexp"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/view"
)

const codeFence = "```"

// whitespace also covers Unicode spaces, the byte order mark and line separators.
const whitespace = `[\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// link text and target never span a line terminator.
const linkPattern = `\[` + lineText + `?\]\(` + lineText + `?\)`

var (
	sectionRe = regexp.MustCompile(`(?m)^#+` + whitespace)
	linkRe    = regexp.MustCompile(linkPattern)
	badgeRe   = regexp.MustCompile(`!` + linkPattern)
)

const (
	wordsCap     = 25.0
	sectionsCap  = 25.0
	codeCap      = 20.0
	linksCap     = 15.0
	badgesCap    = 15.0
	maxScore     = 100.0
	wordsLimit   = 500
	sectionLimit = 8
	codeLimit    = 3
	linksLimit   = 5
	badgesLimit  = 3
)

// ScoreDocument computes the legacy quality score of a README.
func ScoreDocument(md string) view.QualityResult {
	return ScoreDocumentWithMode(md, view.ScoringModeLegacy)
}

// ScoreDocumentWithMode computes document metrics according to mode and
// folds them into a 0-100 score. Unknown modes fall back to legacy.
func ScoreDocumentWithMode(md string, mode view.ScoringMode) view.QualityResult {
	var metrics view.DocumentMetrics
	if mode == view.ScoringModeCorrected {
		metrics = correctedMetrics(md)
	} else {
		metrics = legacyMetrics(md)
	}
	return view.QualityResult{
		Score:   Score(metrics),
		Metrics: metrics,
	}
}

func legacyMetrics(md string) view.DocumentMetrics {
	return view.DocumentMetrics{
		WordCount:      len(strings.Split(md, " ")),
		SectionCount:   len(sectionRe.FindAllStringIndex(md, -1)),
		CodeBlockCount: float64(strings.Count(md, codeFence)) / 2,
		LinkCount:      len(linkRe.FindAllStringIndex(md, -1)),
		BadgeCount:     len(badgeRe.FindAllStringIndex(md, -1)),
	}
}

func correctedMetrics(md string) view.DocumentMetrics {
	links := 0
	for _, loc := range linkRe.FindAllStringIndex(md, -1) {
		if loc[0] > 0 && md[loc[0]-1] == '!' {
			continue
		}
		links++
	}
	return view.DocumentMetrics{
		WordCount:      len(strings.Fields(md)),
		SectionCount:   len(sectionRe.FindAllStringIndex(md, -1)),
		CodeBlockCount: float64(strings.Count(md, codeFence) / 2),
		LinkCount:      links,
		BadgeCount:     len(badgeRe.FindAllStringIndex(md, -1)),
	}
}

// Score combines the capped metric contributions. The result is always in [0,100].
func Score(m view.DocumentMetrics) int {
	total := capped(float64(m.WordCount), wordsLimit, wordsCap, 0.05) +
		capped(float64(m.SectionCount), sectionLimit, sectionsCap, 3) +
		capped(m.CodeBlockCount, codeLimit, codeCap, codeCap/3) +
		capped(float64(m.LinkCount), linksLimit, linksCap, 3) +
		capped(float64(m.BadgeCount), badgesLimit, badgesCap, 5)

	total = math.Min(maxScore, total)
	// round half up
	score := int(math.Floor(total + 0.5))
	if score < 0 {
		return 0
	}
	return score
}

func capped(value float64, limit float64, ceiling float64, weight float64) float64 {
	if value > limit {
		return ceiling
	}
	return value * weight
}
