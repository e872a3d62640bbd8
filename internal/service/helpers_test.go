// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/store"
)

// newTestStorages opens a migrated SQLite database (pure-Go driver) in a
// temp dir.
func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	cfg := config.ClientStorage{DB: config.ClientDB{
		DSN:    filepath.Join(t.TempDir(), "mindful.db"),
		Driver: config.DriverModernc,
	}}

	storages, err := store.NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

// rawJSON marshals each value into a json.RawMessage.
func rawJSON(t *testing.T, values ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

// spySyncService records triggers and returns canned reports.
type spySyncService struct {
	mu       sync.Mutex
	enabled  bool
	reasons  []TriggerReason
	reportFn func(n int) CycleReport

	triggered chan TriggerReason
}

func newSpySyncService() *spySyncService {
	return &spySyncService{triggered: make(chan TriggerReason, 64)}
}

func (s *spySyncService) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

func (s *spySyncService) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *spySyncService) Trigger(_ context.Context, reason TriggerReason) CycleReport {
	s.mu.Lock()
	s.reasons = append(s.reasons, reason)
	n := len(s.reasons)
	fn := s.reportFn
	s.mu.Unlock()

	report := CycleReport{Reason: reason}
	if fn != nil {
		report = fn(n)
	}
	select {
	case s.triggered <- reason:
	default:
	}
	return report
}

func (s *spySyncService) LastReport() (CycleReport, bool) {
	return CycleReport{}, false
}

func (s *spySyncService) Reasons() []TriggerReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TriggerReason(nil), s.reasons...)
}

// waitTrigger waits for the next Trigger call.
func waitTrigger(t *testing.T, s *spySyncService) TriggerReason {
	t.Helper()
	select {
	case r := <-s.triggered:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a sync trigger")
		return ""
	}
}

// spyNudger counts nudges.
type spyNudger struct {
	nudges atomic.Int32
}

func (n *spyNudger) Nudge() { n.nudges.Add(1) }
