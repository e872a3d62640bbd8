// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/mindful-sync/internal/store"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong login or password")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrSessionExpired      = errors.New("session is expired")
	ErrLoginOnServer       = errors.New("error logging in on server")

	// ErrRecordAlreadyExists is returned by Create when the caller supplies
	// a uuid that is already stored, tombstones included.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrPushFailed marks a collection whose pending changes could not be
	// delivered. Nothing was marked synced.
	ErrPushFailed = errors.New("push failed")

	// ErrPullFailed marks a collection whose server changes were not
	// merged. The watermark is unchanged.
	ErrPullFailed = errors.New("pull failed")

	// ErrDependencyFailed marks a collection skipped because a collection
	// it references failed earlier in the same cycle.
	ErrDependencyFailed = errors.New("dependency failed")

	// ErrWatermarkRegression is returned when the server clock is older than
	// the stored watermark.
	ErrWatermarkRegression = store.ErrWatermarkRegression

	ErrSyncDisabled    = errors.New("sync disabled")
	ErrOffline         = errors.New("remote unreachable")
	ErrCycleInProgress = errors.New("sync cycle already in progress")
)
