// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/mindful-sync/models"
)

// SessionSource reports the stored session that authorises sync. It reads
// the session store on every call, so a logout or login made by another
// process on the same database is seen on the next cycle.
type SessionSource interface {
	// Active returns the stored session, [ErrNotLoggedIn] when none exists
	// or [ErrSessionExpired] when its token has expired.
	Active(ctx context.Context) (models.Session, error)
}

// ClientAuthService manages the device session that enables sync.
type ClientAuthService interface {
	SessionSource

	// Login exchanges credentials for a bearer token, persists the session
	// and enables sync.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Restore loads the persisted session at startup. Sync is enabled only
	// when a non-expired session exists; otherwise [ErrNotLoggedIn] or
	// [ErrSessionExpired] is returned and sync stays disabled.
	Restore(ctx context.Context) (models.Session, error)

	// Logout forgets the session and disables sync. Local records are kept.
	Logout(ctx context.Context) error
}

// RecordService is the local CRUD surface for one collection. Every
// mutation goes to the local store first and then nudges the sync job, so
// it succeeds offline.
type RecordService[T any] interface {
	// Create stamps a UUIDv7 identity when the record has none and stores
	// it as a pending change.
	Create(ctx context.Context, record *T) error

	// Update overwrites an existing record as a pending change. Returns
	// [store.ErrRecordNotFound] for unknown uuids.
	Update(ctx context.Context, record *T) error

	// Delete tombstones the record; the deletion is pushed on the next cycle.
	Delete(ctx context.Context, uuid string) error

	Get(ctx context.Context, uuid string) (*T, error)
	List(ctx context.Context, filter models.QueryFilter) ([]T, error)
}

// ClientSyncService is the Sync Orchestrator.
type ClientSyncService interface {
	// SetEnabled opens or closes the session gate.
	SetEnabled(enabled bool)

	// Enabled reports the session gate.
	Enabled() bool

	// Trigger runs one sync cycle unless sync is disabled, the remote is
	// unreachable or another cycle is in flight. It never blocks waiting
	// for a running cycle.
	Trigger(ctx context.Context, reason TriggerReason) CycleReport

	// LastReport returns the report of the last finished cycle, if any.
	LastReport() (CycleReport, bool)
}

// ClientStatusService reports local sync state for the status command.
type ClientStatusService interface {
	Status(ctx context.Context) ([]CollectionStatus, error)
	ResetWatermark(ctx context.Context, collection models.Collection) error
}

// Nudger asks for a sync cycle soon without waiting for it.
type Nudger interface {
	Nudge()
}

// ClientSyncJob runs the orchestrator on a timer with backoff after failed
// cycles and on nudges.
type ClientSyncJob interface {
	Nudger

	// Start launches the background goroutine. Any previously running job
	// is stopped first. A non-positive interval defaults to 5 minutes.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
