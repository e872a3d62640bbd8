// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// ErrorClassification is the result type returned by [ErrorClassificator].
// It indicates whether a failed database operation should be retried or
// abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations and schema errors.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again, e.g. after another connection released its lock.
	Retryable
)

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// SQLiteErrorClassifier implements [ErrorClassificator] for both supported
// SQLite drivers.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLITE_BUSY and SQLITE_LOCKED,
// including their extended codes, are [Retryable]; everything else,
// including nil and non-driver errors, is [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		return ClassifySQLiteCode(int(mattnErr.Code))
	}

	var moderncErr *sqlite.Error
	if errors.As(err, &moderncErr) {
		return ClassifySQLiteCode(moderncErr.Code())
	}

	return NonRetryable
}

// ClassifySQLiteCode maps a primary or extended SQLite result code to an
// [ErrorClassification].
func ClassifySQLiteCode(code int) ErrorClassification {
	// extended codes keep the primary code in the low byte
	switch code & 0xff {
	case sqlitelib.SQLITE_BUSY, sqlitelib.SQLITE_LOCKED:
		return Retryable
	}
	return NonRetryable
}
