// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/service"
)

// SyncWorker runs the periodic sync job for the lifetime of Run.
type SyncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func NewSyncWorker(job service.ClientSyncJob, interval time.Duration) *SyncWorker {
	return &SyncWorker{job: job, interval: interval}
}

func (w *SyncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
	<-ctx.Done()
	w.job.Stop()
}
