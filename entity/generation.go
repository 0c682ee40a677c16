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

package entity

import (
	"time"

	"github.com/Netcracker/qubership-readme-generator/view"
)

type Generation struct {
	tableName struct{} `pg:"readme_generation"`

	Id          string               `pg:"id,pk,type:varchar"`
	Owner       string               `pg:"owner,type:varchar,notnull"`
	Repo        string               `pg:"repo,type:varchar,notnull"`
	Template    string               `pg:"template,type:varchar,notnull"`
	Markdown    string               `pg:"markdown,type:text,notnull"`
	License     string               `pg:"license,type:text"`
	Score       int                  `pg:"score,type:integer,notnull,use_zero"`
	Metrics     view.DocumentMetrics `pg:"metrics,type:jsonb"`
	ScoringMode view.ScoringMode     `pg:"scoring_mode,type:varchar,notnull"`
	Fallback    bool                 `pg:"fallback,type:bool,notnull,use_zero"`
	Checksum    string               `pg:"checksum,type:varchar"`
	CreatedBy   string               `pg:"created_by,type:varchar"`
	CreatedAt   time.Time            `pg:"created_at,type:timestamp without time zone,notnull"`
}

func MakeGenerationSummaryView(ent Generation) view.GenerationSummary {
	return view.GenerationSummary{
		Id:        ent.Id,
		Owner:     ent.Owner,
		Repo:      ent.Repo,
		Template:  ent.Template,
		Score:     ent.Score,
		Fallback:  ent.Fallback,
		CreatedBy: ent.CreatedBy,
		CreatedAt: ent.CreatedAt,
	}
}

func MakeGenerationDetailsView(ent Generation) view.GenerationDetails {
	return view.GenerationDetails{
		GenerationSummary: MakeGenerationSummaryView(ent),
		Markdown:          ent.Markdown,
		License:           ent.License,
		Quality:           view.QualityResult{Score: ent.Score, Metrics: ent.Metrics},
	}
}
