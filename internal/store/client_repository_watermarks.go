// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/models"
)

type watermarkRepository struct {
	*DB
	logger *logger.Logger
}

// NewWatermarkRepository returns the SQLite-backed [WatermarkRepository].
func NewWatermarkRepository(db *DB, log *logger.Logger) WatermarkRepository {
	return &watermarkRepository{
		DB:     db,
		logger: log,
	}
}

func (w *watermarkRepository) Get(ctx context.Context, collection models.Collection) (*time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := getWatermarkQuery(collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lastSyncedAt time.Time
	err = w.DB.QueryRowContext(ctx, query, args...).Scan(scanTime(&lastSyncedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "watermarkRepository.Get").
			Str("collection", string(collection)).
			Msg("failed to read watermark")
		return nil, w.wrapError(ErrScanningRow, err)
	}

	return &lastSyncedAt, nil
}

func (w *watermarkRepository) Set(ctx context.Context, tx DBTX, collection models.Collection, serverTime time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := setWatermarkQuery(collection, serverTime)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "watermarkRepository.Set").
			Str("collection", string(collection)).
			Msg("failed to write watermark")
		return w.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return w.wrapError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "watermarkRepository.Set").
			Str("collection", string(collection)).
			Time("server_time", serverTime).
			Msg("rejected watermark older than the stored one")
		return ErrWatermarkRegression
	}

	return nil
}

func (w *watermarkRepository) List(ctx context.Context) ([]models.Watermark, error) {
	log := logger.FromContext(ctx)

	query, args, err := listWatermarksQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := w.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "watermarkRepository.List").Msg("failed to list watermarks")
		return nil, w.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var watermarks []models.Watermark
	for rows.Next() {
		var (
			name string
			wm   models.Watermark
		)
		if err = rows.Scan(&name, scanTime(&wm.LastSyncedAt)); err != nil {
			log.Err(err).Str("func", "watermarkRepository.List").Msg("failed to scan watermark row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		wm.Collection = models.Collection(name)
		watermarks = append(watermarks, wm)
	}

	if err = rows.Err(); err != nil {
		return nil, w.wrapError(ErrScanningRows, err)
	}

	return watermarks, nil
}

func (w *watermarkRepository) Reset(ctx context.Context, collection models.Collection) error {
	log := logger.FromContext(ctx)

	query, args, err := resetWatermarkQuery(collection)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = w.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "watermarkRepository.Reset").
			Str("collection", string(collection)).
			Msg("failed to reset watermark")
		return w.wrapError(ErrExecutingStatement, err)
	}

	return nil
}
