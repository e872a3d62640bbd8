// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/models"
)

// ClientStorages groups every client-side repository into a single value
// that is constructed once at the application root and injected into the
// service layer.
type ClientStorages struct {
	// DB is the shared handle. It also serves as the [Transactor] of the
	// pull reconcilers.
	DB *DB

	Moods        RecordRepository[models.Mood]
	Journals     RecordRepository[models.Journal]
	Habits       RecordRepository[models.Habit]
	HabitEntries RecordRepository[models.HabitEntry]

	Watermarks WatermarkRepository
	Sessions   SessionRepository
}

// NewClientStorages initialises the client storage layer:
//  1. Opens the SQLite database named by cfg.DB, creating the file if it
//     does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires every repository to the shared handle.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewClientStoragesFromDB(db, logger), nil
}

// NewClientStoragesFromDB wires the repositories to an already opened and
// migrated handle.
func NewClientStoragesFromDB(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		DB:           db,
		Moods:        NewMoodRepository(db, logger),
		Journals:     NewJournalRepository(db, logger),
		Habits:       NewHabitRepository(db, logger),
		HabitEntries: NewHabitEntryRepository(db, logger),
		Watermarks:   NewWatermarkRepository(db, logger),
		Sessions:     NewSessionRepository(db, logger),
	}
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	return s.DB.Close()
}
