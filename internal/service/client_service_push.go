// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/models"
)

// pushReconciler delivers the pending rows of one collection in a single
// bulk request and confirms them locally once the server accepted them.
type pushReconciler[T any, P models.Record[T]] struct {
	repo    store.RecordRepository[T]
	adapter adapter.ServerAdapter
}

func newPushReconciler[T any, P models.Record[T]](repo store.RecordRepository[T], serverAdapter adapter.ServerAdapter) *pushReconciler[T, P] {
	return &pushReconciler[T, P]{repo: repo, adapter: serverAdapter}
}

// Push sends every pending row, tombstones included. Without pending rows
// no request is made. On a transport or server failure nothing is marked
// and the rows are sent again next cycle; the server is idempotent by uuid.
func (p *pushReconciler[T, P]) Push(ctx context.Context) (PushResult, error) {
	log := logger.FromContext(ctx)
	collection := p.repo.Collection()

	pending, err := p.repo.ListUnsynced(ctx)
	if err != nil {
		return PushResult{}, fmt.Errorf("%w: list unsynced %s: %w", ErrPushFailed, collection, err)
	}
	if len(pending) == 0 {
		return PushResult{}, nil
	}

	if err = p.adapter.BulkSync(ctx, collection, pending); err != nil {
		log.Warn().Err(err).
			Str("func", "pushReconciler.Push").
			Int("pending", len(pending)).
			Msg("bulk sync rejected, rows stay pending")
		return PushResult{}, fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	var result PushResult
	for i := range pending {
		meta := P(&pending[i]).Meta()

		marked, err := p.repo.MarkSynced(ctx, meta.UUID, meta.UpdatedAt)
		if err != nil {
			log.Err(err).
				Str("func", "pushReconciler.Push").
				Str("uuid", meta.UUID).
				Msg("failed to mark pushed row as synced")
			result.MarkFailures++
			continue
		}
		if !marked {
			log.Debug().
				Str("func", "pushReconciler.Push").
				Str("uuid", meta.UUID).
				Msg("row changed during push, keeping it pending")
			result.Superseded++
			continue
		}
		result.Pushed++
	}

	log.Info().
		Int("pushed", result.Pushed).
		Int("superseded", result.Superseded).
		Int("mark_failures", result.MarkFailures).
		Msg("push finished")

	return result, nil
}
