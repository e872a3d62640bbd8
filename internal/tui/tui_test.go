// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/service"
	"github.com/MKhiriev/mindful-sync/models"
)

// ── Build info ──

func TestRenderBuildInfo(t *testing.T) {
	out := RenderBuildInfo(models.NewAppBuildInfo("v1.2.0", "", "abc123"))

	assert.Contains(t, out, "Version: v1.2.0")
	assert.Contains(t, out, "Date: N/A")
	assert.Contains(t, out, "Commit: abc123")
}

// ── Status ──

func TestRenderStatus(t *testing.T) {
	synced := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out := RenderStatus([]service.CollectionStatus{
		{Collection: models.CollectionMoods, Pending: 0, LastSyncedAt: &synced},
		{Collection: models.CollectionJournals, Pending: 3},
	}, false)

	assert.Contains(t, out, "SYNC STATUS")
	assert.Contains(t, out, "moods")
	assert.Contains(t, out, "2026-03-01T10:00:00Z")
	assert.Contains(t, out, "journals")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "remote: offline")
}

// ── Report ──

func TestRenderReport(t *testing.T) {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		report service.CycleReport
		want   []string
	}{
		{
			name:   "skipped offline",
			report: service.CycleReport{Skipped: true, SkipReason: fmt.Errorf("%w: %w", service.ErrOffline, adapter.ErrNetwork)},
			want:   []string{"SYNC SKIPPED", "no network"},
		},
		{
			name: "success",
			report: service.CycleReport{
				CycleID: "c-1", Reason: service.TriggerManual, StartedAt: started, FinishedAt: started.Add(1500 * time.Millisecond),
				Collections: []service.CollectionReport{{
					Collection: models.CollectionMoods,
					Push:       service.PushResult{Pushed: 2, Superseded: 1},
					Pull:       service.PullResult{Received: 4, Applied: 3, Skipped: 1, Purged: 2},
				}},
			},
			want: []string{"SYNC DONE", "pushed 2", "applied 3", "kept local 1", "1 edited during push", "purged 2", "cycle c-1, manual in 1.5s"},
		},
		{
			name: "partial failure",
			report: service.CycleReport{
				CycleID: "c-2", Reason: service.TriggerTimer, StartedAt: started, FinishedAt: started,
				Collections: []service.CollectionReport{
					{Collection: models.CollectionMoods, Err: fmt.Errorf("%w: %w", service.ErrPushFailed, context.DeadlineExceeded)},
					{Collection: models.CollectionJournals, Err: fmt.Errorf("%w: moods", service.ErrDependencyFailed)},
				},
			},
			want: []string{"SYNC FAILED", "timed out", "a referenced collection failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderReport(tt.report)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestHumanizeError(t *testing.T) {
	assert.Empty(t, humanizeError(nil))
	assert.Equal(t, "another sync is already running", humanizeError(service.ErrCycleInProgress))
	assert.Contains(t, humanizeError(adapter.ErrUnauthorized), "mindful login")

	long := errors.New("a very long error message that certainly does not fit into the status column width")
	got := humanizeError(long)
	assert.Len(t, got, maxErrorWidth)
	assert.True(t, len(got) > 3 && got[len(got)-3:] == "...")
}
