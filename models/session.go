// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Credentials are sent to POST /auth/login.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse is the answer of POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Session is the locally persisted authentication state. Sync is enabled
// only while a non-expired session exists.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the session carries a token that has not expired
// at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}
