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

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Netcracker/qubership-readme-generator/markdown"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReadme = "# Demo\n\nA **demo** project with [docs](https://example.com).\n\n## Install\n\n```sh\nmake\n```\n"

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(service.SQLITE_PATH, filepath.Join(t.TempDir(), "history.db"))
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScoreCmd(t *testing.T) {
	out, _, err := runCmd(t, sampleReadme, "score", "--json", "--mode", "corrected")

	require.NoError(t, err)
	var result view.QualityResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, markdown.ScoreDocumentWithMode(sampleReadme, view.ScoringModeCorrected), result)
}

func TestScoreCmdText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleReadme), 0o644))

	out, _, err := runCmd(t, "", "score", path)

	require.NoError(t, err)
	expected := markdown.ScoreDocumentWithMode(sampleReadme, view.ScoringModeLegacy)
	assert.True(t, strings.HasPrefix(out, fmt.Sprintf("Score:       %d/100\n", expected.Score)))
	assert.Contains(t, out, "Sections:    2\n")
	assert.Contains(t, out, "Links:       1\n")
}

func TestScoreCmdUnknownMode(t *testing.T) {
	_, _, err := runCmd(t, sampleReadme, "score", "--mode", "strict")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scoring mode")
}

func TestScoreCmdMissingFile(t *testing.T) {
	_, _, err := runCmd(t, "", "score", filepath.Join(t.TempDir(), "missing.md"))

	assert.Error(t, err)
}

func TestRenderCmd(t *testing.T) {
	out, _, err := runCmd(t, "# Title", "render", "-")

	require.NoError(t, err)
	assert.Equal(t, markdown.RenderToHtml("# Title")+"\n", out)
}

func TestExportCmd(t *testing.T) {
	target := filepath.Join(t.TempDir(), "README.html")

	_, stderr, err := runCmd(t, sampleReadme, "export", "--format", "html", "-o", target)

	require.NoError(t, err)
	assert.Contains(t, stderr, "Written "+target)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, markdown.ToStandaloneHtml(sampleReadme), string(content))
}

func TestExportCmdUnsupportedFormat(t *testing.T) {
	_, _, err := runCmd(t, sampleReadme, "export", "--format", "pdf")

	require.Error(t, err)
	assert.Equal(t, "Export format 'pdf' is not supported", err.Error())
}

func TestPreviewCmd(t *testing.T) {
	out, _, err := runCmd(t, sampleReadme, "preview", "--style", "notty")

	require.NoError(t, err)
	assert.Contains(t, out, "Demo")
	assert.Contains(t, out, "make")
}

func TestTemplatesCmd(t *testing.T) {
	out, _, err := runCmd(t, "", "templates")

	require.NoError(t, err)
	for _, id := range []string{"ID", "attractive", "detailed", "minimal", "showcase", "custom"} {
		assert.Contains(t, out, id)
	}
}

func TestLicenseCmd(t *testing.T) {
	out, _, err := runCmd(t, "", "license", "--owner", "octo", "--year", "2021")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "MIT License"))
	assert.Contains(t, out, "Copyright (c) 2021 octo")
}

func TestGenerateCmdRequiresUrl(t *testing.T) {
	_, _, err := runCmd(t, "", "generate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
}

func TestGenerateCmdRequiresLLMKey(t *testing.T) {
	t.Setenv(service.LLM_API_KEY, "")

	_, _, err := runCmd(t, "", "generate", "--url", "https://github.com/octo/hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), service.LLM_API_KEY)
}

func TestGenerateCmd(t *testing.T) {
	var githubAuth atomic.Value
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		githubAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/octo/hello":
			_, _ = w.Write([]byte(`{"name":"hello","description":"Says hello","language":"Go","owner":{"login":"octo"}}`))
		case "/repos/octo/hello/contents":
			_, _ = w.Write([]byte(`[{"name":"main.go","type":"file"}]`))
		case "/repos/octo/hello/languages":
			_, _ = w.Write([]byte(`{"Go":100}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer github.Close()
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]interface{}{"role": "assistant", "content": sampleReadme},
			}},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer llm.Close()

	t.Setenv(service.GITHUB_API_URL, github.URL)
	t.Setenv(service.GITHUB_TOKEN, "")
	t.Setenv(service.LLM_API_KEY, "test-key")
	t.Setenv(service.LLM_BASE_URL, llm.URL+"/")
	t.Setenv(service.LLM_VALIDATE_KEY, "false")
	dir := t.TempDir()
	readmePath := filepath.Join(dir, "README.md")
	licensePath := filepath.Join(dir, "LICENSE")

	_, stderr, err := runCmd(t, "", "generate", "--url", "https://github.com/octo/hello", "-t", "minimal",
		"-o", readmePath, "--license-output", licensePath, "--github-token", "run-token", "--no-history")

	require.NoError(t, err)
	readme, err := os.ReadFile(readmePath)
	require.NoError(t, err)
	assert.Equal(t, sampleReadme, string(readme))
	license, err := os.ReadFile(licensePath)
	require.NoError(t, err)
	assert.Contains(t, string(license), "octo")
	assert.Contains(t, stderr, "quality score")
	assert.Equal(t, "token run-token", githubAuth.Load())
}
