// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/models"
)

type pendingCounter interface {
	Collection() models.Collection
	CountUnsynced(ctx context.Context) (int, error)
}

type clientStatusService struct {
	counters   []pendingCounter
	watermarks store.WatermarkRepository
}

func NewClientStatusService(storages *store.ClientStorages) ClientStatusService {
	return &clientStatusService{
		counters:   []pendingCounter{storages.Moods, storages.Journals, storages.Habits, storages.HabitEntries},
		watermarks: storages.Watermarks,
	}
}

func (s *clientStatusService) Status(ctx context.Context) ([]CollectionStatus, error) {
	statuses := make([]CollectionStatus, 0, len(s.counters))
	for _, counter := range s.counters {
		c := counter.Collection()

		pending, err := counter.CountUnsynced(ctx)
		if err != nil {
			return nil, fmt.Errorf("count pending %s: %w", c, err)
		}
		watermark, err := s.watermarks.Get(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("read watermark %s: %w", c, err)
		}

		statuses = append(statuses, CollectionStatus{Collection: c, Pending: pending, LastSyncedAt: watermark})
	}
	return statuses, nil
}

// ResetWatermark forgets the watermark so the next pull of collection is a
// full sync. Pending local rows are untouched.
func (s *clientStatusService) ResetWatermark(ctx context.Context, collection models.Collection) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: unknown collection %q", ErrInvalidDataProvided, collection)
	}
	return s.watermarks.Reset(ctx, collection)
}
