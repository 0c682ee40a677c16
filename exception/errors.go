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

package exception

import (
	"fmt"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		//todo make smart replace (e.g. now it replaces $repoUrl if we have $repo in params)
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	return msg
}

const InvalidURLEscape = "6"
const InvalidURLEscapeMsg = "Failed to unescape parameter $param"

const InvalidParameterValue = "9"
const InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"

const BadRequestBody = "10"
const BadRequestBodyMsg = "Failed to decode body"

const RequestBodyTooLarge = "11"
const RequestBodyTooLargeMsg = "Request body exceeds the limit of $limit bytes"

const RequiredParamsMissing = "15"
const RequiredParamsMissingMsg = "Required parameters are missing: $params"

const InsufficientPrivileges = "1900"
const InsufficientPrivilegesMsg = "You don't have enough privileges to perform this operation"

const EntityNotFound = "100"
const EntityNotFoundMsg = "$entity with id $id is not found"

const InvalidRepositoryUrl = "3000"
const InvalidRepositoryUrlMsg = "Please provide a valid GitHub repository URL (e.g., https://github.com/username/repository). Got: '$url'"

const RepositoryNotFound = "3001"
const RepositoryNotFoundMsg = "Repository $owner/$repo not found. Please check the URL."

const GithubRateLimitExceeded = "3002"
const GithubRateLimitExceededMsg = "GitHub API rate limit exceeded. Please try again later."

const GithubApiError = "3003"
const GithubApiErrorMsg = "GitHub API error: $code"

const UnknownTemplate = "3100"
const UnknownTemplateMsg = "Template '$template' is not supported$hint"

const CustomPromptMissing = "3101"
const CustomPromptMissingMsg = "Custom template requires non-empty instructions"

const LLMInvalidRequest = "3200"
const LLMInvalidRequestMsg = "Invalid API request. Please check your API key configuration."

const LLMAccessDenied = "3201"
const LLMAccessDeniedMsg = "API key is invalid or has insufficient permissions."

const LLMRateLimitExceeded = "3202"
const LLMRateLimitExceededMsg = "Rate limit exceeded. Please try again in a moment."

const LLMError = "3203"
const LLMErrorMsg = "API Error: $code - $message"

const LLMInvalidResponse = "3204"
const LLMInvalidResponseMsg = "Invalid response from AI service. Please try again."

const LLMNotConfigured = "3205"
const LLMNotConfiguredMsg = "Invalid API key. Please check your LLM API configuration."

const EmptyReadme = "3300"
const EmptyReadmeMsg = "Generated README is empty. Please try again."

const UnsupportedExportFormat = "3400"
const UnsupportedExportFormatMsg = "Export format '$format' is not supported"
