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

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Netcracker/qubership-readme-generator/db"
	"github.com/Netcracker/qubership-readme-generator/entity"
	"github.com/go-pg/pg/v10"
)

type GenerationRepository interface {
	SaveGeneration(ctx context.Context, ent entity.Generation) error
	// GetGeneration returns nil without error when the record does not exist.
	GetGeneration(ctx context.Context, id string) (*entity.Generation, error)
	// ListGenerations returns the latest records first; markdown and license are not loaded.
	ListGenerations(ctx context.Context, limit int) ([]entity.Generation, error)
	DeleteGeneration(ctx context.Context, id string) (bool, error)
	DeleteGenerationsBefore(ctx context.Context, before time.Time) (int, error)
}

func NewGenerationRepository(cp db.ConnectionProvider) GenerationRepository {
	return &generationRepositoryImpl{cp: cp}
}

type generationRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (g generationRepositoryImpl) SaveGeneration(ctx context.Context, ent entity.Generation) error {
	_, err := g.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	return err
}

func (g generationRepositoryImpl) GetGeneration(ctx context.Context, id string) (*entity.Generation, error) {
	var ent entity.Generation
	err := g.cp.GetConnection().ModelContext(ctx, &ent).Where("id = ?", id).Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ent, nil
}

func (g generationRepositoryImpl) ListGenerations(ctx context.Context, limit int) ([]entity.Generation, error) {
	var ents []entity.Generation
	err := g.cp.GetConnection().ModelContext(ctx, &ents).
		ExcludeColumn("markdown", "license").
		Order("created_at DESC").
		Limit(limit).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return []entity.Generation{}, nil
		}
		return nil, err
	}
	return ents, nil
}

func (g generationRepositoryImpl) DeleteGeneration(ctx context.Context, id string) (bool, error) {
	var ent entity.Generation
	res, err := g.cp.GetConnection().ModelContext(ctx, &ent).Where("id = ?", id).Delete()
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (g generationRepositoryImpl) DeleteGenerationsBefore(ctx context.Context, before time.Time) (int, error) {
	res, err := g.cp.GetConnection().ModelContext(ctx, (*entity.Generation)(nil)).
		Where("created_at < ?", before).
		Delete()
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}
