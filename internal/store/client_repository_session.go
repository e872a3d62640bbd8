// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/models"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository returns the SQLite-backed [SessionRepository].
func NewSessionRepository(db *DB, log *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: log,
	}
}

func (s *sessionRepository) Get(ctx context.Context) (*models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := getSessionQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	err = s.DB.QueryRowContext(ctx, query, args...).
		Scan(&session.UserID, &session.Token, scanTime(&session.ExpiresAt))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Get").Msg("failed to read session")
		return nil, s.wrapError(ErrScanningRow, err)
	}

	return &session, nil
}

func (s *sessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := saveSessionQuery(session)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("user_id", session.UserID).
			Msg("failed to save session")
		return s.wrapError(ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) Delete(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteSessionQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sessionRepository.Delete").Msg("failed to delete session")
		return s.wrapError(ErrExecutingStatement, err)
	}

	return nil
}
