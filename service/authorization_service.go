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

	"github.com/Netcracker/qubership-readme-generator/secctx"
)

type AuthorizationService interface {
	HasLLMManagementPermission(ctx context.Context) (bool, error)
	HasHistoryManagementPermission(ctx context.Context) (bool, error)
}

func NewAuthorizationService() AuthorizationService {
	return &authorizationServiceImpl{}
}

type authorizationServiceImpl struct {
}

func (a authorizationServiceImpl) HasLLMManagementPermission(ctx context.Context) (bool, error) {
	return secctx.IsSysadm(ctx), nil
}

// HasHistoryManagementPermission allows removal of history records to admins and system callers.
func (a authorizationServiceImpl) HasHistoryManagementPermission(ctx context.Context) (bool, error) {
	return secctx.IsSysadm(ctx) || secctx.IsSystem(ctx), nil
}
