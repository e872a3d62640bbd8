// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors returned by [ServerAdapter] implementations. HTTP
// responses are mapped onto them by mapHTTPError so callers can match with
// [errors.Is] without knowing the transport.
var (
	// ErrBadRequest is returned for HTTP 400.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned for HTTP 401. The session token is
	// missing, expired or revoked.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden is returned for HTTP 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for HTTP 409.
	ErrConflict = errors.New("conflict")

	// ErrInternalServerError is returned for HTTP 500.
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnavailable is returned for HTTP 502, 503 and 504.
	ErrServerUnavailable = errors.New("server unavailable")

	// ErrNetwork wraps transport failures where no response was received.
	ErrNetwork = errors.New("network error")

	// ErrDecodingResponse is returned when a 2xx body cannot be decoded.
	ErrDecodingResponse = errors.New("error decoding server response")

	// ErrLiveDisabled is returned by [LiveListener.Listen] when no WebSocket
	// address is configured.
	ErrLiveDisabled = errors.New("live updates disabled")
)

// IsTransient reports whether err is worth retrying on a later trigger
// without user action.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrServerUnavailable) ||
		errors.Is(err, ErrInternalServerError)
}
