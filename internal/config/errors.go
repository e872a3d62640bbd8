// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote endpoints
	// (for example, a non-HTTP base URL or zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty or in-memory DSN, or an unknown driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid process settings
	// (for example, an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid scheduling settings
	// (for example, zero sync interval or inverted backoff bounds).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidDevServerConfigs indicates invalid dev server settings.
	ErrInvalidDevServerConfigs = errors.New("invalid dev server configuration")
)
