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

package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS readme_generation (
	id           TEXT PRIMARY KEY,
	owner        TEXT NOT NULL,
	repo         TEXT NOT NULL,
	template     TEXT NOT NULL,
	markdown     TEXT NOT NULL,
	license      TEXT NOT NULL DEFAULT '',
	score        INTEGER NOT NULL,
	metrics      TEXT NOT NULL,
	scoring_mode TEXT NOT NULL,
	fallback     INTEGER NOT NULL DEFAULT 0,
	checksum     TEXT NOT NULL DEFAULT '',
	created_by   TEXT NOT NULL DEFAULT '',
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS readme_generation_created_at_idx ON readme_generation (created_at DESC);
`

// OpenSqlite opens (or creates) the local history database; ":memory:" is accepted for tests.
func OpenSqlite(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return sqlDB, nil
}
