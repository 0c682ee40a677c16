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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Netcracker/qubership-readme-generator/secctx"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/shaj13/go-guardian/v2/auth"
	guardianjwt "github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type captured struct {
	userId  string
	sysadm  bool
	handled bool
}

func capturingHandler(c *captured) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := secctx.MakeUserContext(r)
		c.handled = true
		c.userId = secctx.GetUserId(ctx)
		c.sysadm = secctx.IsSysadm(ctx)
		w.WriteHeader(http.StatusOK)
	}
}

func setup(t *testing.T) {
	t.Helper()
	require.NoError(t, SetupGoGuardian(map[string]view.ApiKey{
		"key-ci":    {Name: "ci"},
		"key-admin": {Name: "ops", Roles: []string{secctx.AdminRole}},
	}, testSecret))
}

func signCookieToken(t *testing.T, secret string, claims accessTokenClaims) string {
	t.Helper()
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: []byte(secret)}, (&jose.SignerOptions{}).WithType("JWT"))
	require.NoError(t, err)
	token, err := jwt.Signed(signer).Claims(claims).CompactSerialize()
	require.NoError(t, err)
	return token
}

func TestSecureApiKey(t *testing.T) {
	setup(t)
	tests := []struct {
		name   string
		key    string
		status int
		userId string
		sysadm bool
	}{
		{name: "regular key", key: "key-ci", status: http.StatusOK, userId: "ci"},
		{name: "admin key", key: "key-admin", status: http.StatusOK, userId: "ops", sysadm: true},
		{name: "unknown key", key: "nope", status: http.StatusUnauthorized},
		{name: "no credentials", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &captured{}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
			if tt.key != "" {
				req.Header.Set(ApiKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()

			Secure(capturingHandler(c))(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status == http.StatusOK, c.handled)
			assert.Equal(t, tt.userId, c.userId)
			assert.Equal(t, tt.sysadm, c.sysadm)
		})
	}
}

func TestSecureBearerToken(t *testing.T) {
	setup(t)
	token, err := guardianjwt.IssueAccessToken(auth.NewDefaultUser("alice", "alice-id", nil, auth.Extensions{}), NewSecretsKeeper(testSecret))
	require.NoError(t, err)
	c := &captured{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Secure(capturingHandler(c))(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice-id", c.userId)
}

func TestSecureCookieToken(t *testing.T) {
	setup(t)
	valid := accessTokenClaims{
		Claims:     jwt.Claims{Subject: "bob-id", Expiry: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Name:       "bob",
		Extensions: map[string][]string{secctx.SystemRoleExt: {secctx.AdminRole}},
	}
	expired := valid
	expired.Claims.Expiry = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "valid", token: signCookieToken(t, testSecret, valid), status: http.StatusOK},
		{name: "wrong secret", token: signCookieToken(t, "another-secret-another-secret-xx", valid), status: http.StatusUnauthorized},
		{name: "expired", token: signCookieToken(t, testSecret, expired), status: http.StatusUnauthorized},
		{name: "garbage", token: "not-a-token", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &captured{}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
			req.AddCookie(&http.Cookie{Name: secctx.AccessTokenCookie, Value: tt.token})
			rec := httptest.NewRecorder()

			Secure(capturingHandler(c))(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "bob-id", c.userId)
				assert.True(t, c.sysadm)
			}
		})
	}
}

func TestSetupGoGuardianWithoutStrategies(t *testing.T) {
	assert.Error(t, SetupGoGuardian(nil, ""))
}

func TestNoSecure(t *testing.T) {
	c := &captured{}
	rec := httptest.NewRecorder()

	NoSecure(capturingHandler(c))(rec, httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", c.userId)
	assert.True(t, c.sysadm)
}

func TestPanicRecovery(t *testing.T) {
	rec := httptest.NewRecorder()

	NoSecure(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})(rec, httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}
