// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/logger"
)

const defaultConnectivityInterval = 15 * time.Second

// ConnectivityMonitor pings the remote and triggers a cycle whenever it
// becomes reachable again.
type ConnectivityMonitor struct {
	adapter     adapter.ServerAdapter
	syncService ClientSyncService
	interval    time.Duration

	online atomic.Bool
	logger *logger.Logger
}

// NewConnectivityMonitor returns an idle monitor; call Run to start it.
func NewConnectivityMonitor(serverAdapter adapter.ServerAdapter, syncService ClientSyncService, interval time.Duration, log *logger.Logger) *ConnectivityMonitor {
	if interval <= 0 {
		interval = defaultConnectivityInterval
	}
	return &ConnectivityMonitor{
		adapter:     serverAdapter,
		syncService: syncService,
		interval:    interval,
		logger:      log,
	}
}

// Online reports the result of the last ping.
func (m *ConnectivityMonitor) Online() bool {
	return m.online.Load()
}

// Run pings immediately and then every interval until ctx is done.
func (m *ConnectivityMonitor) Run(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		m.Check(ctx)

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Check pings the remote once. On an offline to online transition, the
// first successful ping included, it triggers a sync cycle.
func (m *ConnectivityMonitor) Check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.adapter.Ping(pingCtx)
	online := err == nil
	wasOnline := m.online.Swap(online)

	switch {
	case online && !wasOnline:
		m.logger.Info().Msg("remote reachable, triggering sync")
		m.syncService.Trigger(ctx, TriggerReconnect)
	case !online && wasOnline:
		m.logger.Warn().Err(err).Msg("remote unreachable")
	}
}
