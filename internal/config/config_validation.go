// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig]. Only cross-cutting rules
// live here; client and dev server specific rules run on their projections.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.LogLevel != "" && !knownLogLevel(cfg.App.LogLevel) {
		return ErrInvalidAppConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	// The store is the offline cache; an in-memory database loses pending
	// local changes on restart.
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != DriverMattn && cfg.Storage.DB.Driver != DriverModernc {
		return ErrInvalidStorageConfigs
	}

	if !validURL(cfg.Adapter.Address, "http", "https") || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.WSAddress != "" && !validURL(cfg.Adapter.WSAddress, "ws", "wss") {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.SyncInterval <= 0 || w.CycleTimeout <= 0 || w.ConnectivityInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}
	if w.BackoffMin <= 0 || w.BackoffMax < w.BackoffMin {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *DevServer) validate() error {
	var addr NetAddress
	if err := addr.Set(cfg.Address); err != nil {
		return ErrInvalidDevServerConfigs
	}
	if cfg.TokenSignKey == "" || cfg.TokenIssuer == "" || cfg.TokenDuration <= 0 {
		return ErrInvalidDevServerConfigs
	}
	return nil
}

func validURL(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return true
		}
	}
	return false
}

func knownLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return true
	}
	return false
}
