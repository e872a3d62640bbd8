// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncMeta is the bookkeeping every syncable record carries next to its
// domain payload. It is embedded by value into [Mood], [Journal], [Habit]
// and [HabitEntry].
type SyncMeta struct {
	// UUID is the client-generated identity of the record. It is the merge
	// key between local and remote copies and never changes once assigned.
	UUID string `json:"uuid"`

	// RemoteID is the numeric identity assigned by the remote authority.
	// It stays nil until a pull returns the record with its server id.
	RemoteID *int64 `json:"id,omitempty"`

	// CreatedAt is the moment the record was first created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every local mutation and by the server on
	// every remote mutation. It is used for ordering only, never for
	// conflict resolution.
	UpdatedAt time.Time `json:"updated_at"`

	// Synced reports whether the local copy is known to match the remote
	// copy. A false value marks a pending local change. It is local state
	// and never travels over the wire.
	Synced bool `json:"-"`

	// Deleted is the tombstone flag. A deleted record is still pushed so
	// the deletion reaches the remote authority.
	Deleted bool `json:"deleted"`
}

// Meta returns the receiver itself so generic code can reach the embedded
// metadata of any record type.
func (m *SyncMeta) Meta() *SyncMeta {
	return m
}

// Touch marks the record as locally mutated at now.
func (m *SyncMeta) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	m.Synced = false
}

// MarkDeleted turns the record into a pending tombstone.
func (m *SyncMeta) MarkDeleted(now time.Time) {
	m.Deleted = true
	m.Touch(now)
}
