// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background loops of the client: the
// periodic sync job, the connectivity monitor and the live update listener.
// It defines the Worker interface and a Workers aggregate that runs them
// together until the context is cancelled.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled and the worker has released everything
// it started.
type Worker interface {
	Run(ctx context.Context)
}
