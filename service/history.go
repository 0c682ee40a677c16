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
	"net/http"

	"github.com/Netcracker/qubership-readme-generator/entity"
	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/repository"
	"github.com/Netcracker/qubership-readme-generator/view"
)

const DefaultHistoryLimit = 20
const MaxHistoryLimit = 100

type HistoryService interface {
	SaveGeneration(ctx context.Context, ent entity.Generation) error
	ListGenerations(ctx context.Context, limit int) (*view.Generations, error)
	GetGeneration(ctx context.Context, id string) (*view.GenerationDetails, error)
	DeleteGeneration(ctx context.Context, id string) error
}

func NewHistoryService(generationRepository repository.GenerationRepository) HistoryService {
	return &historyServiceImpl{generationRepository: generationRepository}
}

type historyServiceImpl struct {
	generationRepository repository.GenerationRepository
}

func (h historyServiceImpl) SaveGeneration(ctx context.Context, ent entity.Generation) error {
	return h.generationRepository.SaveGeneration(ctx, ent)
}

func (h historyServiceImpl) ListGenerations(ctx context.Context, limit int) (*view.Generations, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	ents, err := h.generationRepository.ListGenerations(ctx, limit)
	if err != nil {
		return nil, err
	}
	result := view.Generations{Generations: make([]view.GenerationSummary, 0, len(ents))}
	for _, ent := range ents {
		result.Generations = append(result.Generations, entity.MakeGenerationSummaryView(ent))
	}
	return &result, nil
}

func (h historyServiceImpl) GetGeneration(ctx context.Context, id string) (*view.GenerationDetails, error) {
	ent, err := h.generationRepository.GetGeneration(ctx, id)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, generationNotFound(id)
	}
	details := entity.MakeGenerationDetailsView(*ent)
	return &details, nil
}

func (h historyServiceImpl) DeleteGeneration(ctx context.Context, id string) error {
	deleted, err := h.generationRepository.DeleteGeneration(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return generationNotFound(id)
	}
	return nil
}

func generationNotFound(id string) error {
	return &exception.CustomError{
		Status:  http.StatusNotFound,
		Code:    exception.EntityNotFound,
		Message: exception.EntityNotFoundMsg,
		Params:  map[string]interface{}{"entity": "README generation", "id": id},
	}
}
