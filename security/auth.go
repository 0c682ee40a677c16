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
	"fmt"
	"time"

	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/shaj13/go-guardian/v2/auth/strategies/union"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
)

var strategy union.Union

// SetupGoGuardian registers the static api key strategy and, when a secret is
// given, bearer and cookie JWT strategies signed with HS256.
func SetupGoGuardian(apiKeys map[string]view.ApiKey, jwtSecret string) error {
	strategies := make([]auth.Strategy, 0, 3)
	if len(apiKeys) > 0 {
		strategies = append(strategies, NewApiKeyStrategy(apiKeys))
	}
	if jwtSecret != "" {
		cache := libcache.LRU.New(1000)
		cache.SetTTL(time.Minute * 60)
		cache.RegisterOnExpired(func(key, _ interface{}) {
			cache.Delete(key)
		})
		strategies = append(strategies, jwt.New(cache, NewSecretsKeeper(jwtSecret)), NewCookieTokenStrategy([]byte(jwtSecret)))
	}
	if len(strategies) == 0 {
		return fmt.Errorf("no authentication strategy is configured")
	}
	strategy = union.New(strategies...)
	return nil
}

func NewSecretsKeeper(jwtSecret string) jwt.SecretsKeeper {
	return jwt.StaticSecret{
		ID:        "secret-id",
		Secret:    []byte(jwtSecret),
		Algorithm: jwt.HS256,
	}
}
