// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks syncable records before they are stored.
//
// A [Validator] is injected into the record services of the client and into
// the development server, so both reject the same malformed input. Callers
// may restrict validation to named fields, e.g. only [FieldUUID] for a
// tombstone.
package validators

import "context"

// Validator validates the provided value, optionally restricted to the
// named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
