// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
)

// mapLoginError translates the adapter's transport error for a login call
// into a service error.
func mapLoginError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrWrongCredentials, err)
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	case adapter.IsTransient(err):
		return fmt.Errorf("%w: %w", ErrOffline, err)
	}

	return fmt.Errorf("%w: %w", ErrLoginOnServer, err)
}
