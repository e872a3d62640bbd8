// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a record addressed by uuid does not
	// exist in its collection table.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrSessionNotFound is returned when no login session is stored.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrWatermarkRegression is returned when a watermark write would move
	// the stored value backwards.
	ErrWatermarkRegression = errors.New("watermark would move backwards")

	// ErrInvalidRecord is returned when a record is missing its uuid.
	ErrInvalidRecord = errors.New("record has no uuid")

	// ErrStorageBusy marks failures the SQLite driver reported as
	// SQLITE_BUSY or SQLITE_LOCKED. The operation may succeed later.
	ErrStorageBusy = errors.New("storage is busy")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with
	// squirrel fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
