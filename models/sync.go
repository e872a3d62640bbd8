// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncRequest is the body of POST /<collection>/sync.
type SyncRequest struct {
	// LastSyncedAt is the stored watermark. Nil asks the server for a full
	// sync and is serialized as JSON null.
	LastSyncedAt *time.Time `json:"last_synced_at"`
}

// SyncResponse is the answer of POST /<collection>/sync.
//
// Results are kept raw so the adapter stays independent from the record
// types; the pull reconciler decodes them into the concrete type.
type SyncResponse struct {
	Results    []json.RawMessage `json:"results"`
	ServerTime time.Time         `json:"server_time"`
}

// BulkSyncRequest is the body of POST /<collection>/bulk_sync.
type BulkSyncRequest struct {
	Items any `json:"items"`
}

// LiveEvent is a message received over the live-update WebSocket.
type LiveEvent struct {
	Type       string     `json:"type"`
	Collection Collection `json:"collection"`
}

// LiveEventChanged announces that a collection changed on the server.
const LiveEventChanged = "changed"
