// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a bearer JWT issued by the remote authority.
//
// The client never holds the signing key, so it only reads the subject and
// the expiry to decide whether the sync engine may run. The dev server uses
// the same type when it signs and verifies tokens.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact serialized form sent in the
	// Authorization header.
	SignedString string `json:"-"`
}

// Session converts the token into the persisted [Session] form.
func (t *Token) Session() (Session, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return Session{}, fmt.Errorf("error extracting subject from token: %w", err)
	}

	var expiresAt time.Time
	if t.ExpiresAt != nil {
		expiresAt = t.ExpiresAt.Time.UTC()
	}

	return Session{UserID: userID, Token: t.SignedString, ExpiresAt: expiresAt}, nil
}

// String returns the compact serialized token.
func (t *Token) String() string {
	return t.SignedString
}
