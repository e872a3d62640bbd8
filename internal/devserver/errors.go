// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of
	// the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidCredentials is returned by Login for an empty login or
	// password.
	ErrInvalidCredentials = errors.New("login and password are required")

	// ErrWrongPassword is returned by Login when the password does not match
	// the one the login was first used with.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnknownCollection is returned for a collection name outside the
	// four synced collections.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrInvalidRecord is returned when a pushed item cannot be decoded or
	// fails validation. The whole batch is rejected.
	ErrInvalidRecord = errors.New("invalid record")
)
