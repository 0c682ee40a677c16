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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Netcracker/qubership-readme-generator/client"
	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/utils"
	"github.com/Netcracker/qubership-readme-generator/view"
	log "github.com/sirupsen/logrus"
)

type RepositoryDataService interface {
	FetchRepoData(ctx context.Context, owner, repo string) (*view.RepositoryData, error)
}

func NewRepositoryDataService(githubClient client.GithubClient, cache client.RepoDataCache, fallbackEnabled bool) RepositoryDataService {
	return &repositoryDataServiceImpl{
		githubClient:    githubClient,
		cache:           cache,
		fallbackEnabled: fallbackEnabled,
	}
}

type repositoryDataServiceImpl struct {
	githubClient    client.GithubClient
	cache           client.RepoDataCache
	fallbackEnabled bool
}

func (r repositoryDataServiceImpl) FetchRepoData(ctx context.Context, owner, repo string) (*view.RepositoryData, error) {
	key := repoCacheKey(owner, repo, secctx.GetGithubToken(ctx))
	if r.cache != nil {
		if cached, found := r.cache.Get(key); found {
			log.Debugf("Repository data for %s/%s is taken from cache", owner, repo)
			return cached, nil
		}
	}

	start := time.Now()
	var (
		wg                           sync.WaitGroup
		repository                   *view.GithubRepository
		contents                     []view.GithubContentItem
		languages                    view.GithubLanguages
		repoErr, contentsErr, langErr error
	)
	wg.Add(3)
	utils.SafeAsync(func() {
		defer wg.Done()
		repository, repoErr = r.githubClient.GetRepository(ctx, owner, repo)
	})
	utils.SafeAsync(func() {
		defer wg.Done()
		contents, contentsErr = r.githubClient.GetContents(ctx, owner, repo)
	})
	utils.SafeAsync(func() {
		defer wg.Done()
		languages, langErr = r.githubClient.GetLanguages(ctx, owner, repo)
	})
	wg.Wait()
	log.Infof("Fetched repository data for %s/%s, it took %dms", owner, repo, time.Since(start).Milliseconds())

	var customErr *exception.CustomError
	if repoErr != nil && errors.As(repoErr, &customErr) {
		return nil, repoErr
	}
	if err := firstError(repoErr, contentsErr, langErr); err != nil {
		if !r.fallbackEnabled {
			return nil, err
		}
		log.Warnf("GitHub API failed for %s/%s, using fallback data: %s", owner, repo, err.Error())
		return MakeFallbackRepoData(owner, repo), nil
	}
	if repository == nil {
		return nil, fmt.Errorf("repository %s/%s: empty response", owner, repo)
	}

	data := &view.RepositoryData{
		Repo:      *repository,
		Contents:  contents,
		Languages: languages,
	}
	if data.Contents == nil {
		data.Contents = []view.GithubContentItem{}
	}
	if data.Languages == nil {
		data.Languages = view.GithubLanguages{}
	}
	if r.cache != nil {
		r.cache.Put(key, *data)
	}
	return data, nil
}

// MakeFallbackRepoData describes a repository when GitHub can't be reached, so generation can still proceed.
func MakeFallbackRepoData(owner, repo string) *view.RepositoryData {
	return &view.RepositoryData{
		Repo: view.GithubRepository{
			Name:        repo,
			Description: fmt.Sprintf("A %s repository", repo),
			Language:    "Unknown",
			CloneUrl:    fmt.Sprintf("https://github.com/%s/%s.git", owner, repo),
			HtmlUrl:     fmt.Sprintf("https://github.com/%s/%s", owner, repo),
		},
		Contents: []view.GithubContentItem{
			{Name: "README.md", Type: "file"},
			{Name: "package.json", Type: "file"},
			{Name: "src", Type: "dir"},
			{Name: ".gitignore", Type: "file"},
		},
		Languages: view.GithubLanguages{"Unknown": 100},
		Fallback:  true,
	}
}

func repoCacheKey(owner, repo, token string) string {
	key := strings.ToLower(owner + "/" + repo)
	if fp := utils.TokenFingerprint(token); fp != "" {
		key += "@" + fp
	}
	return key
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
