// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/mindful-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// RecordRepository is the Local Record Store for one collection.
//
// Every write is a single statement, so the synced flag and updated_at of a
// row always change together.
type RecordRepository[T any] interface {
	// Collection returns the collection the repository serves.
	Collection() models.Collection

	// UpsertLocal inserts the record or overwrites it by uuid as a local
	// mutation: synced becomes false and updated_at becomes now. The
	// record's metadata is updated in place. created_at of an existing row
	// is kept.
	UpsertLocal(ctx context.Context, record *T) error

	// ListUnsynced returns every pending row, tombstones included, oldest
	// change first.
	ListUnsynced(ctx context.Context) ([]T, error)

	// CountUnsynced returns the number of pending rows.
	CountUnsynced(ctx context.Context) (int, error)

	// MarkSynced confirms the pushed version of a row. It reports false
	// without error when the row is gone or was mutated after it was read
	// for the push.
	MarkSynced(ctx context.Context, uuid string, pushedUpdatedAt time.Time) (bool, error)

	// ApplyRemote merges a record received from the remote authority
	// within tx. Rows with a pending local change are left untouched and
	// applied is false. Applied rows are stored with synced = true.
	ApplyRemote(ctx context.Context, tx DBTX, record *T) (applied bool, err error)

	// Query is the UI read path.
	Query(ctx context.Context, filter models.QueryFilter) ([]T, error)

	// Get returns one row or [ErrRecordNotFound].
	Get(ctx context.Context, uuid string) (*T, error)

	// SoftDelete tombstones a row as a local mutation.
	SoftDelete(ctx context.Context, uuid string) error

	// PurgeSyncedTombstones physically removes tombstones whose deletion
	// the remote authority has confirmed and returns their number.
	PurgeSyncedTombstones(ctx context.Context) (int64, error)
}

// WatermarkRepository is the Watermark Store.
type WatermarkRepository interface {
	// Get returns the stored watermark, or nil when the collection has
	// never been pulled.
	Get(ctx context.Context, collection models.Collection) (*time.Time, error)

	// Set stores serverTime within tx. A value older than the stored one
	// is rejected with [ErrWatermarkRegression].
	Set(ctx context.Context, tx DBTX, collection models.Collection, serverTime time.Time) error

	// List returns every stored watermark ordered by collection.
	List(ctx context.Context) ([]models.Watermark, error)

	// Reset deletes the watermark so the next pull is a full sync.
	Reset(ctx context.Context, collection models.Collection) error
}

// SessionRepository persists the single login session of the device.
type SessionRepository interface {
	Get(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, session models.Session) error
	Delete(ctx context.Context) error
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}
