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
	"fmt"
	"strings"
	"time"

	"github.com/Netcracker/qubership-readme-generator/client"
	"github.com/Netcracker/qubership-readme-generator/db"
	"github.com/Netcracker/qubership-readme-generator/view"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	LISTEN_ADDRESS          = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED          = "ORIGIN_ALLOWED"
	LOG_LEVEL               = "LOG_LEVEL"
	GITHUB_API_URL          = "GITHUB_API_URL"
	GITHUB_TOKEN            = "GITHUB_TOKEN"
	GITHUB_FALLBACK_ENABLED = "GITHUB_FALLBACK_ENABLED"
	LLM_API_KEY             = "LLM_API_KEY"
	LLM_BASE_URL            = "LLM_BASE_URL"
	LLM_MODEL               = "LLM_MODEL"
	LLM_VALIDATE_KEY        = "LLM_VALIDATE_KEY"
	QUALITY_SCORING_MODE    = "QUALITY_SCORING_MODE"
	REPO_CACHE_TTL          = "REPO_CACHE_TTL"
	OLRIC_DISCOVERY_MODE    = "OLRIC_DISCOVERY_MODE"
	OLRIC_REPLICA_COUNT     = "OLRIC_REPLICA_COUNT"
	OLRIC_CLUSTER_LABEL     = "OLRIC_CLUSTER_LABEL"
	NAMESPACE               = "NAMESPACE"
	STORAGE_TYPE            = "STORAGE_TYPE"
	DB_HOST                 = "DB_HOST"
	DB_PORT                 = "DB_PORT"
	DB_NAME                 = "DB_NAME"
	DB_USERNAME             = "DB_USERNAME"
	DB_PASSWORD             = "DB_PASSWORD"
	SQLITE_PATH             = "SQLITE_PATH"
	API_KEYS                = "API_KEYS"
	JWT_SECRET              = "JWT_SECRET"
	HISTORY_RETENTION       = "HISTORY_RETENTION"
)

const (
	StorageTypePostgres = "postgres"
	StorageTypeSqlite   = "sqlite"

	OlricDisabled = "disabled"
)

// Gemini exposes an OpenAI compatible chat completions API.
const defaultLLMBaseUrl = "https://generativelanguage.googleapis.com/v1beta/openai/"
const defaultLLMModel = "gemini-1.5-flash-latest"

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetGithubApiUrl() string
	GetGithubToken() string
	IsGithubFallbackEnabled() bool
	GetLLMApiKey() string
	GetLLMBaseUrl() string
	GetLLMModel() string
	IsLLMKeyValidationEnabled() bool
	GetScoringMode() view.ScoringMode
	GetRepoCacheTTL() time.Duration
	GetOlricDiscoveryMode() string
	GetOlricConfig() client.OlricConfig
	GetStorageType() string
	GetCredsFromEnv() *db.DbCredentials
	GetSqlitePath() string
	GetApiKeys() map[string]view.ApiKey
	GetJwtSecret() string
	GetHistoryRetention() time.Duration
}

func NewSystemInfoService() (SystemInfoService, error) {
	return NewSystemInfoServiceFrom(viper.New())
}

// NewSystemInfoServiceFrom reads the configuration from v; environment
// variables override the values already set in it.
func NewSystemInfoServiceFrom(v *viper.Viper) (SystemInfoService, error) {
	s := &systemInfoServiceImpl{v: v}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	v *viper.Viper
}

func (g systemInfoServiceImpl) Init() error {
	g.v.AutomaticEnv()

	g.v.SetDefault(LISTEN_ADDRESS, ":8080")
	g.v.SetDefault(GITHUB_API_URL, "https://api.github.com")
	g.v.SetDefault(GITHUB_FALLBACK_ENABLED, true)
	g.v.SetDefault(LLM_BASE_URL, defaultLLMBaseUrl)
	g.v.SetDefault(LLM_MODEL, defaultLLMModel)
	g.v.SetDefault(LLM_VALIDATE_KEY, true)
	g.v.SetDefault(QUALITY_SCORING_MODE, string(view.ScoringModeLegacy))
	g.v.SetDefault(REPO_CACHE_TTL, "10m")
	g.v.SetDefault(OLRIC_DISCOVERY_MODE, "local")
	g.v.SetDefault(OLRIC_REPLICA_COUNT, 1)
	g.v.SetDefault(OLRIC_CLUSTER_LABEL, client.DefaultOlricClusterLabel)
	g.v.SetDefault(STORAGE_TYPE, StorageTypeSqlite)
	g.v.SetDefault(DB_HOST, "localhost")
	g.v.SetDefault(DB_PORT, 5432)
	g.v.SetDefault(DB_NAME, "readme_generator")
	g.v.SetDefault(DB_USERNAME, "readme_generator")
	g.v.SetDefault(SQLITE_PATH, "readme-generator.db")
	g.v.SetDefault(HISTORY_RETENTION, "0s")

	var errs []string
	if mode := g.GetScoringMode(); !mode.IsValid() {
		errs = append(errs, fmt.Sprintf("%s must be one of %s, %s: got %q", QUALITY_SCORING_MODE, view.ScoringModeLegacy, view.ScoringModeCorrected, mode))
	}
	if st := g.GetStorageType(); st != StorageTypePostgres && st != StorageTypeSqlite {
		errs = append(errs, fmt.Sprintf("%s must be one of %s, %s: got %q", STORAGE_TYPE, StorageTypePostgres, StorageTypeSqlite, st))
	}
	if g.GetRepoCacheTTL() <= 0 {
		errs = append(errs, fmt.Sprintf("%s must be a positive duration", REPO_CACHE_TTL))
	}
	if g.GetHistoryRetention() < 0 {
		errs = append(errs, fmt.Sprintf("%s must not be negative", HISTORY_RETENTION))
	}
	if _, err := parseApiKeys(g.v.GetString(API_KEYS)); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	if g.GetLLMApiKey() == "" {
		log.Warnf("%s is not set, README generation is not available", LLM_API_KEY)
	}
	return nil
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.v.GetString(LISTEN_ADDRESS)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.v.GetString(ORIGIN_ALLOWED)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.v.GetString(LOG_LEVEL)
}

func (g systemInfoServiceImpl) GetGithubApiUrl() string {
	return strings.TrimSuffix(g.v.GetString(GITHUB_API_URL), "/")
}

func (g systemInfoServiceImpl) GetGithubToken() string {
	return g.v.GetString(GITHUB_TOKEN)
}

func (g systemInfoServiceImpl) IsGithubFallbackEnabled() bool {
	return g.v.GetBool(GITHUB_FALLBACK_ENABLED)
}

func (g systemInfoServiceImpl) GetLLMApiKey() string {
	return g.v.GetString(LLM_API_KEY)
}

func (g systemInfoServiceImpl) GetLLMBaseUrl() string {
	return g.v.GetString(LLM_BASE_URL)
}

func (g systemInfoServiceImpl) GetLLMModel() string {
	return g.v.GetString(LLM_MODEL)
}

func (g systemInfoServiceImpl) IsLLMKeyValidationEnabled() bool {
	return g.v.GetBool(LLM_VALIDATE_KEY)
}

func (g systemInfoServiceImpl) GetScoringMode() view.ScoringMode {
	return view.ScoringMode(strings.ToLower(g.v.GetString(QUALITY_SCORING_MODE)))
}

func (g systemInfoServiceImpl) GetRepoCacheTTL() time.Duration {
	return g.v.GetDuration(REPO_CACHE_TTL)
}

func (g systemInfoServiceImpl) GetOlricDiscoveryMode() string {
	return g.v.GetString(OLRIC_DISCOVERY_MODE)
}

func (g systemInfoServiceImpl) GetOlricConfig() client.OlricConfig {
	return client.OlricConfig{
		DiscoveryMode: g.GetOlricDiscoveryMode(),
		ReplicaCount:  g.v.GetInt(OLRIC_REPLICA_COUNT),
		Namespace:     g.v.GetString(NAMESPACE),
		ClusterLabel:  g.v.GetString(OLRIC_CLUSTER_LABEL),
	}
}

func (g systemInfoServiceImpl) GetStorageType() string {
	return strings.ToLower(g.v.GetString(STORAGE_TYPE))
}

func (g systemInfoServiceImpl) GetCredsFromEnv() *db.DbCredentials {
	return &db.DbCredentials{
		Host:     g.v.GetString(DB_HOST),
		Port:     g.v.GetInt(DB_PORT),
		Database: g.v.GetString(DB_NAME),
		Username: g.v.GetString(DB_USERNAME),
		Password: g.v.GetString(DB_PASSWORD),
	}
}

func (g systemInfoServiceImpl) GetSqlitePath() string {
	return g.v.GetString(SQLITE_PATH)
}

func (g systemInfoServiceImpl) GetApiKeys() map[string]view.ApiKey {
	keys, _ := parseApiKeys(g.v.GetString(API_KEYS))
	return keys
}

func (g systemInfoServiceImpl) GetJwtSecret() string {
	return g.v.GetString(JWT_SECRET)
}

// GetHistoryRetention returns 0 when history is kept forever.
func (g systemInfoServiceImpl) GetHistoryRetention() time.Duration {
	return g.v.GetDuration(HISTORY_RETENTION)
}

// parseApiKeys reads "name:key[:role],..." into a key -> api key map.
func parseApiKeys(raw string) (map[string]view.ApiKey, error) {
	result := make(map[string]view.ApiKey)
	if strings.TrimSpace(raw) == "" {
		return result, nil
	}
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%s entries must look like name:key or name:key:role", API_KEYS)
		}
		apiKey := view.ApiKey{Name: parts[0]}
		if len(parts) == 3 && parts[2] != "" {
			apiKey.Roles = []string{parts[2]}
		}
		result[parts[1]] = apiKey
	}
	return result, nil
}
