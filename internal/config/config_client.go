// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Supported values of [DB.Driver].
const (
	DriverMattn   = "sqlite3"
	DriverModernc = "sqlite"
)

// ClientApp holds client-side process settings.
type ClientApp struct {
	LogFile  string
	LogLevel string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// Address is the REST base URL.
	Address string
	// WSAddress is the live-update WebSocket URL; empty disables it.
	WSAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	DSN    string
	Driver string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains the sync scheduling settings.
type ClientWorkers struct {
	SyncInterval         time.Duration
	CycleTimeout         time.Duration
	ConnectivityInterval time.Duration
	BackoffMin           time.Duration
	BackoffMax           time.Duration
	MoodsFullRefresh     bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client view of the merged
// configuration.
func GetClientConfig(flags *Flags) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig projects cfg onto the fields the client uses.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			LogFile:  cfg.App.LogFile,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			Address:        cfg.Adapter.Address,
			WSAddress:      cfg.Adapter.WSAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN:    cfg.Storage.DB.DSN,
				Driver: cfg.Storage.DB.Driver,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			CycleTimeout:         cfg.Workers.CycleTimeout,
			ConnectivityInterval: cfg.Workers.ConnectivityInterval,
			BackoffMin:           cfg.Workers.BackoffMin,
			BackoffMax:           cfg.Workers.BackoffMax,
			MoodsFullRefresh:     cfg.Workers.MoodsFullRefresh,
		},
	}
}

// GetDevServerConfig builds and validates the dev server settings.
func GetDevServerConfig(flags *Flags) (*DevServer, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	devCfg := cfg.DevServer
	return &devCfg, devCfg.validate()
}
