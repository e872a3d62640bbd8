// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/models"
)

type wsLiveListener struct {
	address string
	tokens  interface{ Token() string }
	logger  *logger.Logger
}

// NewWebSocketLiveListener returns a [LiveListener] reading JSON
// [models.LiveEvent] messages from address. The bearer token is taken from
// tokens on every connect so a fresh login is picked up on reconnect.
func NewWebSocketLiveListener(address string, tokens interface{ Token() string }, logger *logger.Logger) LiveListener {
	return &wsLiveListener{
		address: strings.TrimSpace(address),
		tokens:  tokens,
		logger:  logger,
	}
}

// Listen implements [LiveListener].
func (l *wsLiveListener) Listen(ctx context.Context, handler func(models.LiveEvent)) error {
	if l.address == "" {
		return ErrLiveDisabled
	}

	header := http.Header{}
	if token := l.tokens.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.Dial(ctx, l.address, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: live dial", ErrUnauthorized)
		}
		return fmt.Errorf("%w: live dial: %w", ErrNetwork, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	l.logger.Info().Str("address", l.address).Msg("live updates connected")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: live read: %w", ErrNetwork, err)
		}
		if typ != websocket.MessageText {
			continue
		}

		var event models.LiveEvent
		if err = json.Unmarshal(data, &event); err != nil {
			l.logger.Warn().Err(err).Msg("ignoring malformed live event")
			continue
		}
		if event.Type != models.LiveEventChanged || !event.Collection.Valid() {
			l.logger.Debug().Str("type", event.Type).Str("collection", string(event.Collection)).Msg("ignoring live event")
			continue
		}

		handler(event)
	}
}
