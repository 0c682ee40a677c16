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

import "regexp"

var markupRe = regexp.MustCompile("[#*`\\[\\]()]")

// ToPlainText deletes Markdown markup characters and leaves every other byte
// as is. Link and image syntax collapses to adjacent text.
func ToPlainText(md string) string {
	return markupRe.ReplaceAllString(md, "")
}

const pageHead = `<!DOCTYPE html>
<html>
<head>
  <title>README</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif; max-width: 1000px; margin: 0 auto; padding: 20px; }
    pre { background: #f6f8fa; padding: 16px; border-radius: 6px; overflow: auto; }
    code { background: #f6f8fa; padding: 2px 4px; border-radius: 3px; }
    blockquote { border-left: 4px solid #dfe2e5; padding-left: 16px; color: #6a737d; }
  </style>
</head>
<body>
  `

const pageTail = `
</body>
</html>`

// ToStandaloneHtml wraps the rendered fragment into a complete HTML document.
// The raw Markdown is used as body when nothing was rendered.
func ToStandaloneHtml(md string) string {
	body := RenderToHtml(md)
	if body == "" {
		body = md
	}
	return pageHead + body + pageTail
}
