// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/models"
)

// pullReconciler fetches server changes of one collection and merges them
// into the local store.
type pullReconciler[T any, P models.Record[T]] struct {
	repo       store.RecordRepository[T]
	watermarks store.WatermarkRepository
	tx         store.Transactor
	adapter    adapter.ServerAdapter

	// listing fetches the whole collection with GET /<collection> instead of
	// the incremental sync endpoint and never moves the watermark.
	listing bool
}

func newPullReconciler[T any, P models.Record[T]](
	repo store.RecordRepository[T],
	watermarks store.WatermarkRepository,
	tx store.Transactor,
	serverAdapter adapter.ServerAdapter,
	listing bool,
) *pullReconciler[T, P] {
	return &pullReconciler[T, P]{
		repo:       repo,
		watermarks: watermarks,
		tx:         tx,
		adapter:    serverAdapter,
		listing:    listing,
	}
}

// Pull runs one incremental pull. The request happens outside any
// transaction. The merge and the watermark advance to server_time commit
// together, so a failure at any point leaves the watermark where it was.
// Confirmed tombstones are purged afterwards.
func (p *pullReconciler[T, P]) Pull(ctx context.Context) (PullResult, error) {
	if p.listing {
		return p.pullListing(ctx)
	}

	log := logger.FromContext(ctx)
	collection := p.repo.Collection()

	since, err := p.watermarks.Get(ctx, collection)
	if err != nil {
		return PullResult{}, fmt.Errorf("%w: read watermark: %w", ErrPullFailed, err)
	}

	resp, err := p.adapter.Sync(ctx, collection, since)
	if err != nil {
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	records, err := decodeRecords[T](resp.Results)
	if err != nil {
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	var result PullResult
	err = p.tx.WithTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		merged, err := p.merge(ctx, tx, records)
		if err != nil {
			return err
		}
		result = merged
		return p.watermarks.Set(ctx, tx, collection, resp.ServerTime)
	})
	if err != nil {
		if errors.Is(err, store.ErrWatermarkRegression) {
			log.Warn().
				Time("server_time", resp.ServerTime).
				Msg("server clock is behind the stored watermark, merge discarded")
		}
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}
	result.Watermark = resp.ServerTime.UTC()

	p.purge(ctx, &result)

	log.Info().
		Int("received", result.Received).
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Time("watermark", result.Watermark).
		Msg("pull finished")

	return result, nil
}

func (p *pullReconciler[T, P]) pullListing(ctx context.Context) (PullResult, error) {
	log := logger.FromContext(ctx)

	raw, err := p.adapter.List(ctx, p.repo.Collection())
	if err != nil {
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	records, err := decodeRecords[T](raw)
	if err != nil {
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	var result PullResult
	err = p.tx.WithTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		merged, err := p.merge(ctx, tx, records)
		result = merged
		return err
	})
	if err != nil {
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	p.purge(ctx, &result)

	log.Info().
		Int("received", result.Received).
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Msg("listing pull finished")

	return result, nil
}

// merge applies records within tx. Rows with a pending local change are
// skipped by the store; they reach the server with the next push.
func (p *pullReconciler[T, P]) merge(ctx context.Context, tx store.DBTX, records []T) (PullResult, error) {
	log := logger.FromContext(ctx)
	result := PullResult{Received: len(records)}

	for i := range records {
		meta := P(&records[i]).Meta()

		applied, err := p.repo.ApplyRemote(ctx, tx, &records[i])
		if errors.Is(err, store.ErrInvalidRecord) {
			log.Warn().Str("func", "pullReconciler.merge").Msg("ignoring remote record without uuid")
			result.Invalid++
			continue
		}
		if err != nil {
			return PullResult{}, err
		}

		if applied {
			result.Applied++
		} else {
			log.Debug().
				Str("func", "pullReconciler.merge").
				Str("uuid", meta.UUID).
				Msg("local change pending, remote version skipped")
			result.Skipped++
		}
	}

	return result, nil
}

func (p *pullReconciler[T, P]) purge(ctx context.Context, result *PullResult) {
	purged, err := p.repo.PurgeSyncedTombstones(ctx)
	if err != nil {
		// tombstones are retried after the next pull
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "pullReconciler.purge").
			Msg("failed to purge synced tombstones")
		return
	}
	result.Purged = purged
}

func decodeRecords[T any](raw []json.RawMessage) ([]T, error) {
	records := make([]T, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal(item, &records[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", adapter.ErrDecodingResponse, i, err)
		}
	}
	return records, nil
}
