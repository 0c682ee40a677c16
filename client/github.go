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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/view"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

const githubUserAgent = "README-Generator-App"
const githubAccept = "application/vnd.github.v3+json"

type GithubClient interface {
	GetRepository(ctx context.Context, owner, repo string) (*view.GithubRepository, error)
	GetContents(ctx context.Context, owner, repo string) ([]view.GithubContentItem, error)
	GetLanguages(ctx context.Context, owner, repo string) (view.GithubLanguages, error)
}

func NewGithubClient(apiUrl, systemToken string) GithubClient {
	cl := http.Client{Timeout: time.Second * 30}
	client := resty.NewWithClient(&cl)
	if parsed, err := url.Parse(apiUrl); err != nil {
		log.Errorf("Can't parse GitHub API url: %v", err)
	} else if parsed.Hostname() != "" {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))
	}
	return &githubClientImpl{apiUrl: apiUrl, systemToken: systemToken, client: client}
}

type githubClientImpl struct {
	apiUrl      string
	systemToken string
	client      *resty.Client
}

func (g githubClientImpl) GetRepository(ctx context.Context, owner, repo string) (*view.GithubRepository, error) {
	resp, err := g.makeRequest(ctx).Get(g.repoUrl(owner, repo, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, repo, err)
	}
	if resp.StatusCode() != http.StatusOK {
		if resp.StatusCode() == http.StatusNotFound {
			return nil, &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.RepositoryNotFound,
				Message: exception.RepositoryNotFoundMsg,
				Params:  map[string]interface{}{"owner": owner, "repo": repo},
			}
		}
		return nil, checkGithubError(resp)
	}

	var repository view.GithubRepository
	if err = json.Unmarshal(resp.Body(), &repository); err != nil {
		return nil, fmt.Errorf("failed to decode repository %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}

func (g githubClientImpl) GetContents(ctx context.Context, owner, repo string) ([]view.GithubContentItem, error) {
	resp, err := g.makeRequest(ctx).Get(g.repoUrl(owner, repo, "/contents"))
	if err != nil {
		return nil, fmt.Errorf("failed to get contents of %s/%s: %w", owner, repo, err)
	}
	if resp.StatusCode() != http.StatusOK {
		if resp.StatusCode() == http.StatusNotFound {
			return []view.GithubContentItem{}, nil
		}
		return nil, checkGithubError(resp)
	}

	contents := make([]view.GithubContentItem, 0)
	if err = json.Unmarshal(resp.Body(), &contents); err != nil {
		return nil, fmt.Errorf("failed to decode contents of %s/%s: %w", owner, repo, err)
	}
	return contents, nil
}

func (g githubClientImpl) GetLanguages(ctx context.Context, owner, repo string) (view.GithubLanguages, error) {
	resp, err := g.makeRequest(ctx).Get(g.repoUrl(owner, repo, "/languages"))
	if err != nil {
		return nil, fmt.Errorf("failed to get languages of %s/%s: %w", owner, repo, err)
	}
	if resp.StatusCode() != http.StatusOK {
		if resp.StatusCode() == http.StatusNotFound {
			return view.GithubLanguages{}, nil
		}
		return nil, checkGithubError(resp)
	}

	languages := view.GithubLanguages{}
	if err = json.Unmarshal(resp.Body(), &languages); err != nil {
		return nil, fmt.Errorf("failed to decode languages of %s/%s: %w", owner, repo, err)
	}
	return languages, nil
}

func (g githubClientImpl) repoUrl(owner, repo, suffix string) string {
	return fmt.Sprintf("%s/repos/%s/%s%s", g.apiUrl, url.PathEscape(owner), url.PathEscape(repo), suffix)
}

func (g githubClientImpl) makeRequest(ctx context.Context) *resty.Request {
	req := g.client.R()
	req.SetContext(ctx)
	req.SetHeader("Accept", githubAccept)
	req.SetHeader("User-Agent", githubUserAgent)

	token := secctx.GetGithubToken(ctx)
	if token == "" {
		token = g.systemToken
	}
	if token != "" {
		req.SetHeader("Authorization", "token "+token)
	}
	return req
}

// GitHub answers 403 both for exhausted rate limits and for forbidden
// resources; anonymous callers practically only hit the former.
func checkGithubError(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusForbidden || resp.StatusCode() == http.StatusTooManyRequests {
		log.Warnf("GitHub API rate limit exceeded, remaining=%s", resp.Header().Get("X-RateLimit-Remaining"))
		return &exception.CustomError{
			Status:  http.StatusTooManyRequests,
			Code:    exception.GithubRateLimitExceeded,
			Message: exception.GithubRateLimitExceededMsg,
		}
	}
	return &exception.CustomError{
		Status:  http.StatusBadGateway,
		Code:    exception.GithubApiError,
		Message: exception.GithubApiErrorMsg,
		Params:  map[string]interface{}{"code": strconv.Itoa(resp.StatusCode())},
		Debug:   string(resp.Body()),
	}
}
