// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Get("/health", h.health)
	router.With(withGZip).Post("/auth/login", h.login)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// websocket upgrade must see the raw response writer
		r.Get("/live", h.live)

		r.Route("/{collection}", func(r chi.Router) {
			r.Use(withGZip, withCollection)
			r.Get("/", h.list)
			r.Post("/bulk_sync", h.bulkSync)
			r.Post("/sync", h.sync)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
