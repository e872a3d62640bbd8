// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote authority of the wellness app.
//
// [ServerAdapter] decouples the sync engine from the REST protocol and
// [LiveListener] delivers change announcements pushed by the server over a
// WebSocket.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrServerUnavailable] for 503).
package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/mindful-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the remote REST authority.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login exchanges credentials for a bearer token via POST /auth/login.
	// The token is stored via SetToken and returned.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// Ping checks reachability with GET /health. Any non-2xx answer or
	// transport failure is an error.
	Ping(ctx context.Context) error

	// BulkSync pushes items to POST /<collection>/bulk_sync. A nil error
	// means the server accepted every item.
	BulkSync(ctx context.Context, collection models.Collection, items any) error

	// Sync asks POST /<collection>/sync for every record changed after
	// since. A nil since requests a full sync.
	Sync(ctx context.Context, collection models.Collection, since *time.Time) (models.SyncResponse, error)

	// List fetches the whole collection via GET /<collection>.
	List(ctx context.Context, collection models.Collection) ([]json.RawMessage, error)
}

// LiveListener receives change announcements from the server.
type LiveListener interface {
	// Listen connects and calls handler for every received event until ctx
	// is cancelled or the connection drops. It always returns a non-nil
	// error; ctx.Err() after cancellation.
	Listen(ctx context.Context, handler func(models.LiveEvent)) error
}
