// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/events"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/service"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/internal/workers"
	"github.com/MKhiriev/mindful-sync/models"
)

// ErrLoginRequired is returned by [App.Run] when no usable session is
// stored on this device.
var ErrLoginRequired = errors.New("login required, run `mindful login` first")

// App owns the dependency graph of one client process.
type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	bus      *events.Bus
	services *service.ClientServices
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	bus := events.NewBus(log)
	return &App{
		cfg:      cfg,
		storages: storages,
		adapter:  serverAdapter,
		bus:      bus,
		services: service.NewClientServices(storages, serverAdapter, bus, cfg.Workers, log),
		logger:   log,
	}, nil
}

func (a *App) Services() *service.ClientServices {
	return a.services
}

func (a *App) Bus() *events.Bus {
	return a.bus
}

func (a *App) Close() error {
	return a.storages.Close()
}

// Restore loads the stored session. Missing and expired sessions both map
// to [ErrLoginRequired].
func (a *App) Restore(ctx context.Context) (models.Session, error) {
	session, err := a.services.AuthService.Restore(ctx)
	switch {
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, service.ErrSessionExpired):
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginRequired, err)
	case err != nil:
		return models.Session{}, fmt.Errorf("restore session: %w", err)
	}
	return session, nil
}

// SyncOnce restores the session and runs a single manual cycle.
func (a *App) SyncOnce(ctx context.Context) (service.CycleReport, error) {
	if _, err := a.Restore(ctx); err != nil {
		return service.CycleReport{}, err
	}
	report := a.services.SyncService.Trigger(ctx, service.TriggerManual)
	return report, report.Err()
}

// Run is the long-lived sync daemon. It runs a foreground cycle, then the
// periodic job, the connectivity monitor and the live listener until ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	session, err := a.Restore(ctx)
	if err != nil {
		return err
	}
	a.logger.Info().Str("user_id", session.UserID).Msg("session restored, starting sync")

	for _, c := range models.Collections {
		unsubscribe := a.bus.On(c.UpdatedTopic(), a.logCollectionUpdated)
		defer unsubscribe()
	}

	a.services.SyncService.Trigger(ctx, service.TriggerForeground)

	listener := adapter.NewWebSocketLiveListener(a.cfg.Adapter.WSAddress, a.adapter, a.logger)
	workers.NewWorkers(
		workers.NewSyncWorker(a.services.SyncJob, a.cfg.Workers.SyncInterval),
		a.services.Connectivity,
		workers.NewLiveWorker(listener, a.adapter, a.services.SyncService, a.cfg.Workers.BackoffMin, a.cfg.Workers.BackoffMax, a.logger),
	).Run(ctx)

	a.logger.Info().Msg("sync stopped")
	return nil
}

func (a *App) logCollectionUpdated(payload any) {
	cr, ok := payload.(service.CollectionReport)
	if !ok {
		return
	}
	a.logger.Debug().
		Str("collection", cr.Collection.String()).
		Int("pushed", cr.Push.Pushed).
		Int("received", cr.Pull.Received).
		Int("applied", cr.Pull.Applied).
		Int64("purged", cr.Pull.Purged).
		Msg("collection updated")
}
