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

// recordRepository is the SQLite implementation of [RecordRepository],
// parameterized by the record type and its table layout.
type recordRepository[T any, P models.Record[T]] struct {
	*DB
	table  recordTable[T, P]
	now    func() time.Time
	logger *logger.Logger
}

func newRecordRepository[T any, P models.Record[T]](db *DB, table recordTable[T, P], log *logger.Logger) *recordRepository[T, P] {
	log.Debug().Str("table", table.name).Msg("creating record repository")
	return &recordRepository[T, P]{
		DB:     db,
		table:  table,
		now:    time.Now,
		logger: log,
	}
}

// NewMoodRepository returns the repository of the moods table.
func NewMoodRepository(db *DB, log *logger.Logger) RecordRepository[models.Mood] {
	return newRecordRepository(db, moodTable(), log)
}

// NewJournalRepository returns the repository of the journals table.
func NewJournalRepository(db *DB, log *logger.Logger) RecordRepository[models.Journal] {
	return newRecordRepository(db, journalTable(), log)
}

// NewHabitRepository returns the repository of the habits table.
func NewHabitRepository(db *DB, log *logger.Logger) RecordRepository[models.Habit] {
	return newRecordRepository(db, habitTable(), log)
}

// NewHabitEntryRepository returns the repository of the habit_entries table.
func NewHabitEntryRepository(db *DB, log *logger.Logger) RecordRepository[models.HabitEntry] {
	return newRecordRepository(db, habitEntryTable(), log)
}

func (r *recordRepository[T, P]) Collection() models.Collection {
	return models.Collection(r.table.name)
}

func (r *recordRepository[T, P]) UpsertLocal(ctx context.Context, record *T) error {
	log := logger.FromContext(ctx)

	meta := P(record).Meta()
	if meta.UUID == "" {
		return ErrInvalidRecord
	}
	meta.Touch(r.now())

	query, args, err := r.table.upsertLocalQuery(P(record))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpsertLocal").
			Str("collection", r.table.name).
			Str("uuid", meta.UUID).
			Msg("failed to upsert local record")
		return r.wrapError(ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository[T, P]) ListUnsynced(ctx context.Context) ([]T, error) {
	query, args, err := r.table.listUnsyncedQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.selectAll(ctx, r.DB, "recordRepository.ListUnsynced", query, args)
}

func (r *recordRepository[T, P]) CountUnsynced(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.table.countUnsyncedQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "recordRepository.CountUnsynced").
			Str("collection", r.table.name).
			Msg("failed to count unsynced records")
		return 0, r.wrapError(ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *recordRepository[T, P]) MarkSynced(ctx context.Context, uuid string, pushedUpdatedAt time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.table.markSyncedQuery(uuid, pushedUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.MarkSynced").
			Str("collection", r.table.name).
			Str("uuid", uuid).
			Msg("failed to mark record synced")
		return false, r.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.wrapError(ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

func (r *recordRepository[T, P]) ApplyRemote(ctx context.Context, tx DBTX, record *T) (bool, error) {
	log := logger.FromContext(ctx)

	meta := P(record).Meta()
	if meta.UUID == "" {
		return false, ErrInvalidRecord
	}
	meta.Synced = true
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = r.now()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = meta.UpdatedAt
	}

	query, args, err := r.table.applyRemoteQuery(P(record))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ApplyRemote").
			Str("collection", r.table.name).
			Str("uuid", meta.UUID).
			Msg("failed to apply remote record")
		return false, r.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.wrapError(ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

func (r *recordRepository[T, P]) Query(ctx context.Context, filter models.QueryFilter) ([]T, error) {
	query, args, err := r.table.queryQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.selectAll(ctx, r.DB, "recordRepository.Query", query, args)
}

func (r *recordRepository[T, P]) Get(ctx context.Context, uuid string) (*T, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.table.getQuery(uuid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item T
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(r.table.scanDest(P(&item))...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Str("collection", r.table.name).
			Str("uuid", uuid).
			Msg("failed to scan record row")
		return nil, r.wrapError(ErrScanningRow, err)
	}

	return &item, nil
}

func (r *recordRepository[T, P]) SoftDelete(ctx context.Context, uuid string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.table.softDeleteQuery(uuid, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.SoftDelete").
			Str("collection", r.table.name).
			Str("uuid", uuid).
			Msg("failed to tombstone record")
		return r.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.wrapError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *recordRepository[T, P]) PurgeSyncedTombstones(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.table.purgeQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.PurgeSyncedTombstones").
			Str("collection", r.table.name).
			Msg("failed to purge tombstones")
		return 0, r.wrapError(ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// selectAll runs a multi-row query and scans every row into a T.
func (r *recordRepository[T, P]) selectAll(ctx context.Context, q DBTX, fn, query string, args []any) ([]T, error) {
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("collection", r.table.name).
			Msg("failed to execute query")
		return nil, r.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err = rows.Scan(r.table.scanDest(P(&item))...); err != nil {
			log.Err(err).
				Str("func", fn).
				Str("collection", r.table.name).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", fn).
			Str("collection", r.table.name).
			Msg("error occurred during rows iteration")
		return nil, r.wrapError(ErrScanningRows, err)
	}

	return items, nil
}
