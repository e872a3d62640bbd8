// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Server runs the dev remote over HTTP.
type Server struct {
	server *http.Server
	logger *logger.Logger
}

func NewServer(cfg config.DevServer, logger *logger.Logger) *Server {
	logger.Info().Msg("creating dev server...")
	handler := NewHandler(NewRemote(), cfg, logger)

	return &Server{
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler.Init(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	// live connections are hijacked and only stop with their request context
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.server.Addr).Msg("Launching dev server")
		serveErr <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("dev server ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dev server Shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Info().Msg("dev server Shutdown gracefully")
	return nil
}
