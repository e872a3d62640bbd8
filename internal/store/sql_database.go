// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/migrations"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it, so a repository method that accepts
// a DBTX can run either standalone or inside [DB.WithTx].
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is the local SQLite handle shared by every client repository.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}

// Driver returns the database/sql driver name the handle was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// WithTx begins a transaction, runs fn with the transactional handle and
// commits on success. Any error or panic from fn rolls the transaction
// back; panics are rethrown.
//
// The handle holds a single connection, so fn must use tx for every query.
// Calling a repository method that uses the pool from inside fn blocks
// until the context expires.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.WithTx").Msg("error beginning transaction")
		return db.wrapError(ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Err(rbErr).Str("func", "DB.WithTx").Msg("error rolling back transaction")
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			log.Err(commitErr).Str("func", "DB.WithTx").Msg("error committing transaction")
			err = db.wrapError(ErrCommitingTransaction, commitErr)
		}
	}()

	return fn(ctx, tx)
}

// wrapError joins sentinel and err, adding [ErrStorageBusy] when the
// classifier deems err retryable.
func (db *DB) wrapError(sentinel, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", sentinel, ErrStorageBusy, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
