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

type RepoCoordinates struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

type GithubRepository struct {
	Name            string       `json:"name"`
	FullName        string       `json:"full_name,omitempty"`
	Description     string       `json:"description"`
	Language        string       `json:"language"`
	StargazersCount int          `json:"stargazers_count"`
	ForksCount      int          `json:"forks_count"`
	Homepage        string       `json:"homepage"`
	CloneUrl        string       `json:"clone_url"`
	HtmlUrl         string       `json:"html_url"`
	Owner           *GithubOwner `json:"owner,omitempty"`
}

type GithubOwner struct {
	Login string `json:"login"`
}

type GithubContentItem struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	Type string `json:"type"`
}

// GithubLanguages maps a language name to the number of bytes written in it.
type GithubLanguages map[string]int

type RepositoryData struct {
	Repo      GithubRepository    `json:"repo"`
	Contents  []GithubContentItem `json:"contents"`
	Languages GithubLanguages     `json:"languages"`
	Fallback  bool                `json:"fallback,omitempty"`
}
