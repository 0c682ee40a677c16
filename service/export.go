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
	"net/http"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/markdown"
	"github.com/Netcracker/qubership-readme-generator/view"
)

type ExportService interface {
	Export(md string, format view.ExportFormat) (*view.ExportedFile, error)
}

func NewExportService() ExportService {
	return &exportServiceImpl{}
}

type exportServiceImpl struct {
}

func (e exportServiceImpl) Export(md string, format view.ExportFormat) (*view.ExportedFile, error) {
	switch view.ExportFormat(strings.ToLower(string(format))) {
	case "", view.ExportMarkdown:
		return &view.ExportedFile{Filename: "README.md", MimeType: "text/markdown", Content: []byte(md)}, nil
	case view.ExportHtml:
		return &view.ExportedFile{Filename: "README.html", MimeType: "text/html", Content: []byte(markdown.ToStandaloneHtml(md))}, nil
	case view.ExportText:
		return &view.ExportedFile{Filename: "README.txt", MimeType: "text/plain", Content: []byte(markdown.ToPlainText(md))}, nil
	}
	return nil, &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.UnsupportedExportFormat,
		Message: exception.UnsupportedExportFormatMsg,
		Params:  map[string]interface{}{"format": format},
	}
}
