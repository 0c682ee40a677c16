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

	"github.com/Netcracker/qubership-readme-generator/view"
)

type LicenseService interface {
	GenerateMITLicense(repo view.GithubRepository, year int) string
	GenerateMITLicenseFor(owner string, year int) string
}

func NewLicenseService() LicenseService {
	return &licenseServiceImpl{}
}

type licenseServiceImpl struct {
}

const defaultLicenseOwner = "Project Owner"

const mitLicenseTemplate = `MIT License

Copyright (c) %d %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.`

// GenerateMITLicense takes the copyright holder from the owner login,
// then from the full name prefix.
func (l licenseServiceImpl) GenerateMITLicense(repo view.GithubRepository, year int) string {
	owner := ""
	if repo.Owner != nil {
		owner = repo.Owner.Login
	}
	if owner == "" && repo.FullName != "" {
		owner, _, _ = strings.Cut(repo.FullName, "/")
	}
	return l.GenerateMITLicenseFor(owner, year)
}

func (l licenseServiceImpl) GenerateMITLicenseFor(owner string, year int) string {
	if strings.TrimSpace(owner) == "" {
		owner = defaultLicenseOwner
	}
	return fmt.Sprintf(mitLicenseTemplate, year, owner)
}
