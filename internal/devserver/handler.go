// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
)

type Handler struct {
	remote *Remote
	hub    *liveHub
	cfg    config.DevServer

	logger *logger.Logger
}

func NewHandler(remote *Remote, cfg config.DevServer, logger *logger.Logger) *Handler {
	logger.Info().Msg("dev server handler created")
	return &Handler{
		remote: remote,
		hub:    newLiveHub(),
		cfg:    cfg,
		logger: logger,
	}
}
