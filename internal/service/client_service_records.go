// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/internal/validators"
	"github.com/MKhiriev/mindful-sync/models"
)

type recordService[T any, P models.Record[T]] struct {
	repo      store.RecordRepository[T]
	validator validators.Validator
	ids       *utils.UUIDGenerator
	nudger    Nudger
}

// NewRecordService returns the local CRUD service of one collection. nudger
// may be nil when no background sync runs.
func NewRecordService[T any, P models.Record[T]](repo store.RecordRepository[T], validator validators.Validator, nudger Nudger) RecordService[T] {
	return &recordService[T, P]{
		repo:      repo,
		validator: validator,
		ids:       utils.NewUUIDGenerator(),
		nudger:    nudger,
	}
}

func (s *recordService[T, P]) Create(ctx context.Context, record *T) error {
	meta := P(record).Meta()
	if strings.TrimSpace(meta.UUID) == "" {
		meta.UUID = s.ids.Generate()
	} else {
		// tombstones count: reusing their uuid would resurrect the record
		_, err := s.repo.Get(ctx, meta.UUID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", ErrRecordAlreadyExists, meta.UUID)
		case !errors.Is(err, store.ErrRecordNotFound):
			return err
		}
	}
	meta.RemoteID = nil
	meta.Deleted = false

	return s.save(ctx, record)
}

func (s *recordService[T, P]) Update(ctx context.Context, record *T) error {
	meta := P(record).Meta()

	current, err := s.repo.Get(ctx, meta.UUID)
	if err != nil {
		return err
	}
	currentMeta := P(current).Meta()
	if currentMeta.Deleted {
		return store.ErrRecordNotFound
	}
	// identity and server-owned fields are not editable
	meta.RemoteID = currentMeta.RemoteID
	meta.CreatedAt = currentMeta.CreatedAt
	meta.Deleted = false

	return s.save(ctx, record)
}

func (s *recordService[T, P]) save(ctx context.Context, record *T) error {
	if err := s.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := s.repo.UpsertLocal(ctx, record); err != nil {
		return err
	}
	s.nudge()
	return nil
}

func (s *recordService[T, P]) Delete(ctx context.Context, uuid string) error {
	if err := s.validator.Validate(ctx, s.tombstone(uuid), validators.FieldUUID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	current, err := s.repo.Get(ctx, uuid)
	if err != nil {
		return err
	}
	if P(current).Meta().Deleted {
		return nil
	}

	if err = s.repo.SoftDelete(ctx, uuid); err != nil {
		return err
	}
	s.nudge()
	return nil
}

func (s *recordService[T, P]) Get(ctx context.Context, uuid string) (*T, error) {
	record, err := s.repo.Get(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if P(record).Meta().Deleted {
		return nil, store.ErrRecordNotFound
	}
	return record, nil
}

func (s *recordService[T, P]) List(ctx context.Context, filter models.QueryFilter) ([]T, error) {
	return s.repo.Query(ctx, filter)
}

func (s *recordService[T, P]) tombstone(uuid string) *T {
	var record T
	meta := P(&record).Meta()
	meta.UUID = uuid
	meta.Deleted = true
	return &record
}

func (s *recordService[T, P]) nudge() {
	if s.nudger != nil {
		s.nudger.Nudge()
	}
}
