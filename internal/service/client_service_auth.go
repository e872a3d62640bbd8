// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/models"
)

type clientAuthService struct {
	sessions    store.SessionRepository
	adapter     adapter.ServerAdapter
	syncService ClientSyncService

	now    func() time.Time
	logger *logger.Logger
}

func NewClientAuthService(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, syncService ClientSyncService, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions:    sessions,
		adapter:     serverAdapter,
		syncService: syncService,
		now:         time.Now,
		logger:      log,
	}
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if strings.TrimSpace(creds.Login) == "" || creds.Password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	signed, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return models.Session{}, mapLoginError(err)
	}

	// the client has no signing key; the claims only drive the local gate
	token, err := utils.ParseUnverifiedJWTToken(signed)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}
	session, err := token.Session()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	if err = a.sessions.Save(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	a.adapter.SetToken(session.Token)
	a.syncService.SetEnabled(true)

	a.logger.Info().Str("user_id", session.UserID).Time("expires_at", session.ExpiresAt).Msg("logged in")
	return session, nil
}

func (a *clientAuthService) Active(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.Get(ctx)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return models.Session{}, ErrNotLoggedIn
	case err != nil:
		return models.Session{}, fmt.Errorf("load session: %w", err)
	case !session.Valid(a.now()):
		return *session, ErrSessionExpired
	}
	return *session, nil
}

func (a *clientAuthService) Restore(ctx context.Context) (models.Session, error) {
	session, err := a.Active(ctx)
	if err != nil {
		a.syncService.SetEnabled(false)
		return session, err
	}

	a.adapter.SetToken(session.Token)
	a.syncService.SetEnabled(true)
	return session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.syncService.SetEnabled(false)
	a.adapter.SetToken("")

	if err := a.sessions.Delete(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
