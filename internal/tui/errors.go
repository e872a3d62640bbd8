// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/service"
)

const maxErrorWidth = 60

// humanizeError turns a sync error into a short line for the terminal.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrSyncDisabled), errors.Is(err, adapter.ErrUnauthorized):
		return "not logged in or session expired, run `mindful login`"
	case errors.Is(err, service.ErrOffline), errors.Is(err, adapter.ErrNetwork):
		return "no network or the server is unavailable"
	case errors.Is(err, service.ErrCycleInProgress):
		return "another sync is already running"
	case errors.Is(err, service.ErrDependencyFailed):
		return "skipped, a referenced collection failed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, service.ErrWatermarkRegression):
		return "server clock went backwards, nothing merged"
	}
	return fitText(err.Error(), maxErrorWidth)
}
