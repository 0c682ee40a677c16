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
	"fmt"
	"net/http"
	"time"

	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/shaj13/go-guardian/v2/auth"
	"gopkg.in/square/go-jose.v2/jwt"
)

func NewCookieTokenStrategy(secret []byte) auth.Strategy {
	return &cookieTokenStrategyImpl{secret: secret}
}

type cookieTokenStrategyImpl struct {
	secret []byte
}

type accessTokenClaims struct {
	jwt.Claims
	Name       string              `json:"name,omitempty"`
	Extensions map[string][]string `json:"ext,omitempty"`
}

func (a cookieTokenStrategyImpl) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	cookie, err := r.Cookie(secctx.AccessTokenCookie)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: access token cookie not found")
	}

	jt, err := jwt.ParseSigned(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("token parse error: %w", err)
	}
	var claims accessTokenClaims
	if err = jt.Claims(a.secret, &claims); err != nil {
		return nil, fmt.Errorf("authentication failed, token from cookie is incorrect: %w", err)
	}
	if err = claims.ValidateWithLeeway(jwt.Expected{Time: time.Now()}, time.Minute); err != nil {
		return nil, fmt.Errorf("authentication failed, token from cookie is expired: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("authentication failed, token from cookie has no subject")
	}

	userExtensions := auth.Extensions{}
	for key, values := range claims.Extensions {
		for _, value := range values {
			userExtensions.Add(key, value)
		}
	}
	return auth.NewDefaultUser(claims.Name, claims.Subject, []string{}, userExtensions), nil
}
