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
	"regexp"
	"strings"
)

// lineText matches the rest of a line without its terminator.
const lineText = `[^\n\r\x{2028}\x{2029}]*`

const (
	paragraphOpen = `<p class="text-gray-300 mb-4">`
	listOpen      = `<ul class="list-disc list-inside mb-4 space-y-1">`
)

type substitution struct {
	re   *regexp.Regexp
	repl string
}

// The order is significant: later rules see the output of earlier ones.
var pipeline = []substitution{
	{regexp.MustCompile(`(?m)^### (` + lineText + `)`), `<h3 class="text-lg font-semibold text-white mb-2 mt-4">${1}</h3>`},
	{regexp.MustCompile(`(?m)^## (` + lineText + `)`), `<h2 class="text-xl font-bold text-white mb-3 mt-6">${1}</h2>`},
	{regexp.MustCompile(`(?m)^# (` + lineText + `)`), `<h1 class="text-2xl font-bold text-white mb-4 mt-8">${1}</h1>`},

	{regexp.MustCompile("```([^`]+)```"), `<pre class="bg-gray-800 p-4 rounded-lg overflow-x-auto mb-4"><code class="text-green-400 text-sm">${1}</code></pre>`},
	{regexp.MustCompile("`([^`]+)`"), `<code class="bg-gray-700 px-2 py-1 rounded text-blue-300">${1}</code>`},

	{regexp.MustCompile(`\*\*([^*]+)\*\*`), `<strong class="font-semibold text-white">${1}</strong>`},
	{regexp.MustCompile(`\*([^*]+)\*`), `<em class="italic text-gray-300">${1}</em>`},

	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), `<a href="${2}" class="text-blue-400 hover:text-blue-300 underline" target="_blank">${1}</a>`},

	{regexp.MustCompile(`(?m)^\* (` + lineText + `)`), `<li class="text-gray-300 mb-1">${1}</li>`},
	{regexp.MustCompile(`(?m)^- (` + lineText + `)`), `<li class="text-gray-300 mb-1">${1}</li>`},
}

const listItem = `<li[^>]*>.*?</li>`

var (
	listItemRe     = regexp.MustCompile(`(?is)` + listItem)
	paragraphTagRe = regexp.MustCompile(`(?i)</?p[^>]*>`)

	// a run is items joined by line breaks; breaks after the last item stay
	// outside the list unless they only precede the closing paragraph tag
	listRunRe = regexp.MustCompile(`(?is)(<p(?:\s[^>]*)?>)?(` + listItem + `(?:(?:\s|<br>)*` + listItem + `)*)((?:\s|<br>)*</p>)?`)
)

// RenderToHtml converts the supported Markdown subset into an HTML fragment.
// Empty input renders to an empty string. The output is not sanitized.
func RenderToHtml(md string) string {
	if md == "" {
		return ""
	}

	html := md
	for _, s := range pipeline {
		html = s.re.ReplaceAllString(html, s.repl)
	}

	html = strings.ReplaceAll(html, "\n\n", "</p>"+paragraphOpen)
	html = strings.ReplaceAll(html, "\n", "<br>")

	html = paragraphOpen + html + "</p>"

	return repairLists(html)
}

// repairLists removes paragraph markup from list items and groups every run
// of consecutive items into a single list.
func repairLists(html string) string {
	html = listItemRe.ReplaceAllStringFunc(html, func(item string) string {
		return paragraphTagRe.ReplaceAllString(item, "")
	})

	return listRunRe.ReplaceAllStringFunc(html, func(run string) string {
		groups := listRunRe.FindStringSubmatch(run)
		open, items, closing := groups[1], groups[2], groups[3]

		list := listOpen + strings.Join(listItemRe.FindAllString(items, -1), "") + "</ul>"
		if open != "" && closing != "" {
			return list
		}
		return open + list + closing
	})
}
