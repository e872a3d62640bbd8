// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps an existing *sql.DB for tests.
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		driver:             "sqlmock",
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// sqliteDrivers lists every driver the local store supports; the default
// comes first.
var sqliteDrivers = []string{config.DriverMattn, config.DriverModernc}

// newSQLiteStorages opens a migrated SQLite database in a temp dir through
// driver.
func newSQLiteStorages(t *testing.T, driver string) *ClientStorages {
	t.Helper()
	cfg := config.ClientStorage{DB: config.ClientDB{
		DSN:    filepath.Join(t.TempDir(), "mindful.db"),
		Driver: driver,
	}}

	storages, err := NewClientStorages(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

// forEachDriver runs test once per supported driver, each on a fresh
// database.
func forEachDriver(t *testing.T, test func(t *testing.T, s *ClientStorages)) {
	t.Helper()
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			test(t, newSQLiteStorages(t, driver))
		})
	}
}

// fixedClock returns a clock that advances by one second on every call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func ptr[T any](v T) *T {
	return &v
}
