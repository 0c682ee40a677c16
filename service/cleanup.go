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
	"time"

	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/repository"
	"github.com/Netcracker/qubership-readme-generator/utils"
	log "github.com/sirupsen/logrus"
)

type CleanupService interface {
	ClearHistory(ctx context.Context, olderThan time.Duration) (int, error)
	StartRetentionJob(retention time.Duration, interval time.Duration) (stop func())
}

type cleanupServiceImpl struct {
	generationRepository repository.GenerationRepository
	now                  func() time.Time
}

func NewCleanupService(generationRepository repository.GenerationRepository) CleanupService {
	return &cleanupServiceImpl{
		generationRepository: generationRepository,
		now:                  time.Now,
	}
}

func (s *cleanupServiceImpl) ClearHistory(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "olderThan", "value": olderThan.String()},
		}
	}
	before := s.now().Add(-olderThan)
	log.Debugf("Starting history cleanup for generations created before %s", before.Format(time.RFC3339))

	deleted, err := s.generationRepository.DeleteGenerationsBefore(ctx, before)
	if err != nil {
		return 0, err
	}
	log.Debugf("History cleanup completed, %d generations deleted", deleted)
	return deleted, nil
}

func (s *cleanupServiceImpl) StartRetentionJob(retention time.Duration, interval time.Duration) func() {
	ctx, cancel := context.WithCancel(context.Background())
	utils.SafeAsync(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.ClearHistory(ctx, retention)
				if err != nil {
					log.Errorf("Failed to clean up README history: %s", err.Error())
					continue
				}
				if deleted > 0 {
					log.Infof("Removed %d README generations older than %s", deleted, retention)
				}
			}
		}
	})
	return cancel
}
