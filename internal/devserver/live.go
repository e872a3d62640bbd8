// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/models"
)

const liveBuffer = 16

// liveHub fans change events out to the live connections of a user.
type liveHub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.LiveEvent]struct{}
}

func newLiveHub() *liveHub {
	return &liveHub{subs: make(map[string]map[chan models.LiveEvent]struct{})}
}

func (h *liveHub) subscribe(userID string) (<-chan models.LiveEvent, func()) {
	ch := make(chan models.LiveEvent, liveBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan models.LiveEvent]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[userID], ch)
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
	}
}

// publish never blocks; a connection that is behind drops events, which is
// harmless because every event only asks for a sync.
func (h *liveHub) publish(userID string, event models.LiveEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *liveHub) subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		log.Error().Str("func", "*Handler.live").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.live").Msg("websocket handshake failed")
		return
	}
	defer conn.CloseNow()

	events, unsubscribe := h.hub.subscribe(userID)
	defer unsubscribe()

	// the client never writes; CloseRead notices when it goes away
	ctx := conn.CloseRead(r.Context())
	log.Debug().Str("user_id", userID).Msg("live connection opened")

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event := <-events:
			if err = wsjson.Write(ctx, conn, event); err != nil {
				log.Debug().Err(err).Msg("live connection lost")
				return
			}
		}
	}
}
