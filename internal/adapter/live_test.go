// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newLiveServer(t *testing.T, messages []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")

		for _, msg := range messages {
			if err := conn.Write(r.Context(), websocket.MessageText, []byte(msg)); err != nil {
				return
			}
		}
		// keep the connection open until the client leaves
		_, _, _ = conn.Read(r.Context())
	}))
}

func TestLiveListener_DeliversChangedEvents(t *testing.T) {
	srv := newLiveServer(t, []string{
		`{"type":"changed","collection":"journals"}`,
		`not json`,
		`{"type":"hello"}`,
		`{"type":"changed","collection":"unknown"}`,
		`{"type":"changed","collection":"habits"}`,
	})
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	l := NewWebSocketLiveListener(wsURL, staticToken("tok"), logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []models.Collection
	err := l.Listen(ctx, func(e models.LiveEvent) {
		got = append(got, e.Collection)
		if len(got) == 2 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []models.Collection{models.CollectionJournals, models.CollectionHabits}, got)
}

func TestLiveListener_Unauthorized(t *testing.T) {
	srv := newLiveServer(t, nil)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	l := NewWebSocketLiveListener(wsURL, staticToken(""), logger.Nop())

	err := l.Listen(context.Background(), func(models.LiveEvent) {})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLiveListener_Disabled(t *testing.T) {
	l := NewWebSocketLiveListener("", staticToken("tok"), logger.Nop())
	err := l.Listen(context.Background(), func(models.LiveEvent) {})
	require.ErrorIs(t, err, ErrLiveDisabled)
}
