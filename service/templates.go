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
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplatesYaml []byte

type TemplateService interface {
	ListTemplates() []view.ReadmeTemplate
	GetTemplate(id string) (*view.ReadmeTemplate, error)
}

func NewTemplateService() (TemplateService, error) {
	return NewTemplateServiceFromYaml(defaultTemplatesYaml)
}

func NewTemplateServiceFromYaml(data []byte) (TemplateService, error) {
	var catalog view.ReadmeTemplates
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse templates catalog: %w", err)
	}
	byId := make(map[string]view.ReadmeTemplate, len(catalog.Templates))
	for _, t := range catalog.Templates {
		if t.Id == "" {
			return nil, fmt.Errorf("template %q has no id", t.Name)
		}
		if _, exists := byId[t.Id]; exists {
			return nil, fmt.Errorf("duplicate template id %s", t.Id)
		}
		byId[t.Id] = t
	}
	return &templateServiceImpl{templates: catalog.Templates, byId: byId}, nil
}

type templateServiceImpl struct {
	templates []view.ReadmeTemplate
	byId      map[string]view.ReadmeTemplate
}

func (t templateServiceImpl) ListTemplates() []view.ReadmeTemplate {
	result := make([]view.ReadmeTemplate, len(t.templates))
	copy(result, t.templates)
	return result
}

func (t templateServiceImpl) GetTemplate(id string) (*view.ReadmeTemplate, error) {
	tmpl, ok := t.byId[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.UnknownTemplate,
			Message: exception.UnknownTemplateMsg,
			Params:  map[string]interface{}{"template": id, "hint": t.hint(id)},
		}
	}
	return &tmpl, nil
}

func (t templateServiceImpl) hint(id string) string {
	ids := make([]string, 0, len(t.templates))
	for _, tmpl := range t.templates {
		ids = append(ids, tmpl.Id)
	}
	if id != "" {
		if matches := fuzzy.Find(strings.ToLower(id), ids); len(matches) > 0 {
			return fmt.Sprintf(", did you mean '%s'?", matches[0].Str)
		}
	}
	return fmt.Sprintf(", available templates: %s", strings.Join(ids, ", "))
}
