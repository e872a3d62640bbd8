// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/models"
)

type collectionCtxKey struct{}

// bulkSyncRequest mirrors [models.BulkSyncRequest] with the items left
// undecoded until the collection is known.
type bulkSyncRequest struct {
	Items []json.RawMessage `json:"items"`
}

type bulkSyncResponse struct {
	Accepted int `json:"accepted"`
}

// withCollection resolves the {collection} URL parameter; unknown
// collections are answered with 404.
func withCollection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		collection, err := models.ParseCollection(chi.URLParam(r, "collection"))
		if err != nil {
			http.Error(w, ErrUnknownCollection.Error(), http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), collectionCtxKey{}, collection)))
	})
}

// requestScope returns the authenticated user and the collection of r.
func requestScope(r *http.Request) (string, models.Collection, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	collection, ok := r.Context().Value(collectionCtxKey{}).(models.Collection)
	return userID, collection, found && ok
}

func (h *Handler) bulkSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, collection, ok := requestScope(r)
	if !ok {
		log.Error().Str("func", "*Handler.bulkSync").Msg("no user ID or collection was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req bulkSyncRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.bulkSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accepted, err := h.remote.BulkSync(r.Context(), userID, collection, req.Items)
	if err != nil {
		log.Err(err).Str("func", "*Handler.bulkSync").Msg("bulk sync rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if accepted > 0 {
		h.hub.publish(userID, models.LiveEvent{Type: models.LiveEventChanged, Collection: collection})
	}
	utils.WriteJSON(w, bulkSyncResponse{Accepted: accepted}, http.StatusOK)
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, collection, ok := requestScope(r)
	if !ok {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID or collection was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.SyncRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	results, serverTime, err := h.remote.Sync(userID, collection, req.LastSyncedAt)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("error collecting changes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SyncResponse{Results: results, ServerTime: serverTime}, http.StatusOK)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, collection, ok := requestScope(r)
	if !ok {
		log.Error().Str("func", "*Handler.list").Msg("no user ID or collection was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	results, err := h.remote.List(userID, collection)
	if err != nil {
		log.Err(err).Str("func", "*Handler.list").Msg("error listing collection")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, results, http.StatusOK)
}

var errorStatusMap = map[error]int{
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrWrongPassword:      http.StatusUnauthorized,
	ErrUnknownCollection:  http.StatusNotFound,
	ErrInvalidRecord:      http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
