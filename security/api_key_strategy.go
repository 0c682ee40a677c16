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

package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/shaj13/go-guardian/v2/auth"
)

const ApiKeyHeader = "api-key"

func NewApiKeyStrategy(apiKeys map[string]view.ApiKey) auth.Strategy {
	return &apiKeyStrategyImpl{apiKeys: apiKeys}
}

type apiKeyStrategyImpl struct {
	apiKeys map[string]view.ApiKey
}

func (a apiKeyStrategyImpl) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	apiKeyHeader := r.Header.Get(ApiKeyHeader)
	if apiKeyHeader == "" {
		return nil, fmt.Errorf("authentication failed: %v is empty", ApiKeyHeader)
	}

	for key, apiKey := range a.apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKeyHeader)) != 1 {
			continue
		}
		userExtensions := auth.Extensions{}
		for _, sysRole := range apiKey.Roles {
			userExtensions.Add(secctx.SystemRoleExt, sysRole)
		}
		return auth.NewDefaultUser(apiKey.Name, apiKey.Name, []string{}, userExtensions), nil
	}
	return nil, fmt.Errorf("authentication failed: %v is not valid", ApiKeyHeader)
}
