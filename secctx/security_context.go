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

package secctx

import (
	"context"
	"net/http"
	"strings"

	"github.com/shaj13/go-guardian/v2/auth"
)

type contextKey string

const secCtxKey contextKey = "secCtx"

const GithubTokenHeader = "X-Github-Token"

const SystemRoleExt = "systemRole"
const AdminRole = "admin"

type securityContextImpl struct {
	userId      string
	githubToken string
	isSysadm    bool
	isSystem    bool
}

func MakeUserContext(r *http.Request) context.Context {
	if _, ok := get(r.Context()); ok {
		return r.Context()
	}
	userId := ""
	isSysadm := false
	if user := auth.User(r); user != nil {
		userId = user.GetID()
		for _, role := range user.GetExtensions().Values(SystemRoleExt) {
			if role == AdminRole {
				isSysadm = true
			}
		}
	}

	return context.WithValue(r.Context(), secCtxKey, securityContextImpl{
		userId:      userId,
		githubToken: strings.TrimSpace(r.Header.Get(GithubTokenHeader)),
		isSysadm:    isSysadm,
		isSystem:    false,
	})
}

// MakeAnonymousContext is used when the service runs without authentication,
// every caller is then an administrator.
func MakeAnonymousContext(r *http.Request) context.Context {
	return context.WithValue(r.Context(), secCtxKey, securityContextImpl{
		userId:      "anonymous",
		githubToken: strings.TrimSpace(r.Header.Get(GithubTokenHeader)),
		isSysadm:    true,
	})
}

func MakeSysadminContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, secCtxKey, securityContextImpl{userId: "system", isSysadm: true, isSystem: true})
}

// AccessTokenCookie carries the JWT issued for browser sessions.
const AccessTokenCookie = "readme-access-token"

func get(ctx context.Context) (securityContextImpl, bool) {
	val, ok := ctx.Value(secCtxKey).(securityContextImpl)
	return val, ok
}

func IsSystem(ctx context.Context) bool {
	val, _ := get(ctx)
	return val.isSystem
}

func IsSysadm(ctx context.Context) bool {
	val, _ := get(ctx)
	return val.isSysadm
}

func GetUserId(ctx context.Context) string {
	val, _ := get(ctx)
	return val.userId
}

// GetGithubToken returns the caller supplied GitHub token, empty when none was sent.
func GetGithubToken(ctx context.Context) string {
	val, _ := get(ctx)
	return val.githubToken
}

// WithGithubToken is used by callers outside of HTTP handling, e.g. the CLI.
func WithGithubToken(ctx context.Context, token string) context.Context {
	val, _ := get(ctx)
	val.githubToken = token
	return context.WithValue(ctx, secCtxKey, val)
}
