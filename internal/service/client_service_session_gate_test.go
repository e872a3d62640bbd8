// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/events"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/mock"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/models"
)

// Демон и CLI открывают один и тот же файл SQLite, как два процесса.

func openStorages(t *testing.T, dsn string) *store.ClientStorages {
	t.Helper()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{DB: config.ClientDB{
		DSN:    dsn,
		Driver: config.DriverModernc,
	}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

// tokenTrackingAdapter returns a mock adapter whose Token reflects the last
// SetToken, an online Ping and an empty delta for every pull.
func tokenTrackingAdapter(ctrl *gomock.Controller, current *string) *mock.MockServerAdapter {
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().SetToken(gomock.Any()).Do(func(token string) { *current = token }).AnyTimes()
	m.EXPECT().Token().DoAndReturn(func() string { return *current }).AnyTimes()
	m.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()
	return m
}

func quietPulls(m *mock.MockServerAdapter) {
	m.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{ServerTime: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}, nil).AnyTimes()
}

func newGatedServices(t *testing.T, storages *store.ClientStorages, serverAdapter adapter.ServerAdapter) *ClientServices {
	t.Helper()
	return NewClientServices(storages, serverAdapter, events.NewBus(logger.Nop()),
		config.ClientWorkers{CycleTimeout: time.Minute}, logger.Nop())
}

// ── Session gate ─────────────────────────────────────────────────────────────

func TestSessionGate_LogoutFromAnotherProcessStopsSync(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "mindful.db")
	ctrl := gomock.NewController(t)

	daemonStorages := openStorages(t, dsn)
	require.NoError(t, daemonStorages.Sessions.Save(ctx, models.Session{
		UserID: "u", Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
	}))

	var daemonToken string
	daemonAdapter := tokenTrackingAdapter(ctrl, &daemonToken)
	quietPulls(daemonAdapter)
	daemon := newGatedServices(t, daemonStorages, daemonAdapter)

	_, err := daemon.AuthService.Restore(ctx)
	require.NoError(t, err)
	first := daemon.SyncService.Trigger(ctx, TriggerTimer)
	require.False(t, first.Skipped, "skipped: %v", first.SkipReason)

	var cliToken string
	cli := newGatedServices(t, openStorages(t, dsn), tokenTrackingAdapter(ctrl, &cliToken))
	require.NoError(t, cli.AuthService.Logout(ctx))

	next := daemon.SyncService.Trigger(ctx, TriggerTimer)
	assert.True(t, next.Skipped)
	assert.ErrorIs(t, next.SkipReason, ErrSyncDisabled)
	assert.ErrorIs(t, next.SkipReason, ErrNotLoggedIn)
	assert.False(t, daemon.SyncService.Enabled())
}

func TestSessionGate_ExpiredSessionStopsSync(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	ctrl := gomock.NewController(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, storages.Sessions.Save(ctx, models.Session{UserID: "u", Token: "tok", ExpiresAt: now.Add(time.Minute)}))

	var token string
	serverAdapter := tokenTrackingAdapter(ctrl, &token)
	quietPulls(serverAdapter)

	orchestrator := NewSyncOrchestrator(storages, serverAdapter, events.NewBus(logger.Nop()),
		config.ClientWorkers{CycleTimeout: time.Minute}, logger.Nop())
	auth := NewClientAuthService(storages.Sessions, serverAdapter, orchestrator, logger.Nop()).(*clientAuthService)
	auth.now = func() time.Time { return now }
	orchestrator.SetSessionSource(auth)

	report := orchestrator.Trigger(ctx, TriggerTimer)
	require.False(t, report.Skipped, "skipped: %v", report.SkipReason)
	assert.Equal(t, "tok", token, "token is refreshed from the stored session")

	now = now.Add(2 * time.Minute)
	report = orchestrator.Trigger(ctx, TriggerTimer)
	assert.True(t, report.Skipped)
	assert.ErrorIs(t, report.SkipReason, ErrSessionExpired)
}

func TestSessionGate_NewLoginReopensAfterRejection(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	ctrl := gomock.NewController(t)

	require.NoError(t, storages.Sessions.Save(ctx, models.Session{UserID: "u", Token: "tok1", ExpiresAt: time.Now().Add(time.Hour)}))

	var token string
	serverAdapter := tokenTrackingAdapter(ctrl, &token)
	// первый pull получает 401, дальше сервер принимает запросы
	serverAdapter.EXPECT().Sync(gomock.Any(), models.CollectionMoods, gomock.Any()).
		Return(models.SyncResponse{}, adapter.ErrUnauthorized).Times(1)
	quietPulls(serverAdapter)
	svcs := newGatedServices(t, storages, serverAdapter)

	rejected := svcs.SyncService.Trigger(ctx, TriggerTimer)
	require.False(t, rejected.Skipped)
	assert.True(t, rejected.Failed())
	assert.False(t, svcs.SyncService.Enabled())

	again := svcs.SyncService.Trigger(ctx, TriggerTimer)
	assert.True(t, again.Skipped, "the rejected token is not retried")
	assert.ErrorIs(t, again.SkipReason, ErrSyncDisabled)

	// login made by another process stores a fresh token
	require.NoError(t, storages.Sessions.Save(ctx, models.Session{UserID: "u", Token: "tok2", ExpiresAt: time.Now().Add(time.Hour)}))

	resumed := svcs.SyncService.Trigger(ctx, TriggerTimer)
	require.False(t, resumed.Skipped, "skipped: %v", resumed.SkipReason)
	assert.NoError(t, resumed.Err())
	assert.Equal(t, "tok2", token)
	assert.True(t, svcs.SyncService.Enabled())
}

func TestClientAuthService_Active_DoesNotTouchGate(t *testing.T) {
	svc, sessions, _, spy := newTestAuth(t)
	spy.SetEnabled(true)

	sessions.EXPECT().Get(gomock.Any()).Return(nil, store.ErrSessionNotFound)

	_, err := svc.Active(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.True(t, spy.Enabled())
}
