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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Netcracker/qubership-readme-generator/entity"
	"github.com/Netcracker/qubership-readme-generator/view"
)

// NewSqliteGenerationRepository keeps the history in a local file, for single node setups and the CLI.
func NewSqliteGenerationRepository(sqlDB *sql.DB) GenerationRepository {
	return &sqliteGenerationRepositoryImpl{db: sqlDB}
}

type sqliteGenerationRepositoryImpl struct {
	db *sql.DB
}

const sqliteGenerationColumns = "id, owner, repo, template, markdown, license, score, metrics, scoring_mode, fallback, checksum, created_by, created_at"

func (s sqliteGenerationRepositoryImpl) SaveGeneration(ctx context.Context, ent entity.Generation) error {
	metrics, err := json.Marshal(ent.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO readme_generation ("+sqliteGenerationColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		ent.Id, ent.Owner, ent.Repo, ent.Template, ent.Markdown, ent.License, ent.Score, string(metrics),
		string(ent.ScoringMode), ent.Fallback, ent.Checksum, ent.CreatedBy, ent.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert generation %s: %w", ent.Id, err)
	}
	return nil
}

func (s sqliteGenerationRepositoryImpl) GetGeneration(ctx context.Context, id string) (*entity.Generation, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sqliteGenerationColumns+" FROM readme_generation WHERE id = ?", id)
	ent, err := scanGeneration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ent, nil
}

func (s sqliteGenerationRepositoryImpl) ListGenerations(ctx context.Context, limit int) ([]entity.Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner, repo, template, '', '', score, metrics, scoring_mode, fallback, checksum, created_by, created_at "+
			"FROM readme_generation ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	result := make([]entity.Generation, 0)
	for rows.Next() {
		ent, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ent)
	}
	return result, rows.Err()
}

func (s sqliteGenerationRepositoryImpl) DeleteGeneration(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM readme_generation WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete generation %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s sqliteGenerationRepositoryImpl) DeleteGenerationsBefore(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM readme_generation WHERE created_at < ?", before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to delete generations before %s: %w", before, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*entity.Generation, error) {
	var (
		ent       entity.Generation
		metrics   string
		mode      string
		createdAt int64
	)
	err := row.Scan(&ent.Id, &ent.Owner, &ent.Repo, &ent.Template, &ent.Markdown, &ent.License, &ent.Score,
		&metrics, &mode, &ent.Fallback, &ent.Checksum, &ent.CreatedBy, &createdAt)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal([]byte(metrics), &ent.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics of generation %s: %w", ent.Id, err)
	}
	ent.ScoringMode = view.ScoringMode(mode)
	ent.CreatedAt = time.Unix(0, createdAt).UTC()
	return &ent, nil
}
