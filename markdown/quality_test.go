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

package markdown

import (
	"strings"
	"testing"

	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/stretchr/testify/assert"
)

func TestScoreDocumentEmpty(t *testing.T) {
	result := ScoreDocument("")

	assert.Equal(t, 0, result.Score)
	// splitting "" on a space yields one empty word
	assert.Equal(t, view.DocumentMetrics{WordCount: 1}, result.Metrics)
}

func TestScoreDocumentMetrics(t *testing.T) {
	tests := []struct {
		name    string
		md      string
		metrics view.DocumentMetrics
		score   int
	}{
		{
			name:    "inline links",
			md:      "[a](http://x) [b](http://y)",
			metrics: view.DocumentMetrics{WordCount: 2, LinkCount: 2},
			score:   6,
		},
		{
			name:    "badge is also a link",
			md:      "![alt](http://img.png)",
			metrics: view.DocumentMetrics{WordCount: 1, LinkCount: 1, BadgeCount: 1},
			score:   8,
		},
		{
			name:    "odd fence count is fractional",
			md:      "```go\nx\n```\n```",
			metrics: view.DocumentMetrics{WordCount: 1, CodeBlockCount: 1.5},
			score:   10,
		},
		{
			name:    "runs of spaces inflate word count",
			md:      " a  b ",
			metrics: view.DocumentMetrics{WordCount: 5},
			score:   0,
		},
		{
			name:    "heading needs whitespace after hashes",
			md:      "# One\n#Two\n###### Three",
			metrics: view.DocumentMetrics{WordCount: 3, SectionCount: 2},
			score:   6,
		},
		{
			name:    "heading separated by a no-break space",
			md:      "#\u00a0Title\n##\u3000Usage",
			metrics: view.DocumentMetrics{WordCount: 1, SectionCount: 2},
			score:   6,
		},
		{
			name:    "link does not span a carriage return",
			md:      "[a\rb](c)",
			metrics: view.DocumentMetrics{WordCount: 1},
			score:   0,
		},
		{
			name:    "badge does not span a line separator",
			md:      "![a](b\u2028c)",
			metrics: view.DocumentMetrics{WordCount: 1},
			score:   0,
		},
		{
			name:    "link text may contain closing bracket",
			md:      "[a]b](c)",
			metrics: view.DocumentMetrics{WordCount: 1, LinkCount: 1},
			score:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreDocument(tt.md)
			assert.Equal(t, tt.metrics, result.Metrics)
			assert.Equal(t, tt.score, result.Score)
		})
	}
}

func TestScoreDocumentSectionsCapped(t *testing.T) {
	headings := []string{"# H1", "## H2", "### H3", "#### H4", "##### H5", "###### H6", "####### H7", "# H8", "## H9"}
	result := ScoreDocument(strings.Join(headings, "\n"))

	assert.Equal(t, 9, result.Metrics.SectionCount)
	// 10 words * 0.05 + capped sections 25
	assert.Equal(t, 26, result.Score)
}

func TestScoreDocumentRoundsHalfUp(t *testing.T) {
	md := strings.Repeat("w ", 49) + "w"

	result := ScoreDocument(md)

	assert.Equal(t, 50, result.Metrics.WordCount)
	assert.Equal(t, 3, result.Score)
}

func TestScoreDocumentClampedAt100(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		sb.WriteString("![badge](https://img.shields.io/x.svg)\n")
	}
	for i := 0; i < 10; i++ {
		sb.WriteString("## Section\n")
		sb.WriteString(strings.Repeat("lorem ipsum ", 40))
		sb.WriteString("\n```sh\nmake build\n```\n")
		sb.WriteString("[link](https://example.com)\n")
	}

	result := ScoreDocument(sb.String())

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 10.0, result.Metrics.CodeBlockCount)
	assert.Equal(t, 14, result.Metrics.LinkCount)
	assert.Equal(t, 4, result.Metrics.BadgeCount)
}

func TestScoreDocumentBounds(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"```",
		strings.Repeat("# a\n", 100),
		strings.Repeat("![x](y)", 1000),
		strings.Repeat("*", 10000),
		"[unterminated(link",
	}
	for _, in := range inputs {
		score := ScoreDocument(in).Score
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestScoreDocumentCorrectedMode(t *testing.T) {
	md := "![alt](http://img.png) [a](x)\n```go\ncode\n```\n```"

	result := ScoreDocumentWithMode(md, view.ScoringModeCorrected)

	assert.Equal(t, view.DocumentMetrics{
		WordCount:      6,
		CodeBlockCount: 1,
		LinkCount:      1,
		BadgeCount:     1,
	}, result.Metrics)

	legacy := ScoreDocumentWithMode(md, view.ScoringModeLegacy)
	assert.Equal(t, 2, legacy.Metrics.LinkCount)
	assert.Equal(t, 1.5, legacy.Metrics.CodeBlockCount)

	assert.Equal(t, 0, ScoreDocumentWithMode("", view.ScoringModeCorrected).Metrics.WordCount)
}

func TestScoreDocumentIsDeterministic(t *testing.T) {
	md := "# Title\n\nSome **text** with [a link](https://x) and ![badge](https://y)\n"
	assert.Equal(t, ScoreDocument(md), ScoreDocument(md))
}
