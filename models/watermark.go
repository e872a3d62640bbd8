// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Watermark is the server time through which a collection has been fully
// pulled and merged.
type Watermark struct {
	Collection   Collection `json:"collection"`
	LastSyncedAt time.Time  `json:"last_synced_at"`
}

// QueryFilter narrows the UI read path of a record repository.
type QueryFilter struct {
	// IncludeDeleted returns tombstones too.
	IncludeDeleted bool

	// Limit caps the number of returned rows. Zero means no limit.
	Limit uint64

	// UpdatedSince keeps only rows updated at or after the given moment.
	UpdatedSince *time.Time
}
