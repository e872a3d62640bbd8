// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// mindful-sync client and its dev server. It aggregates all
// sub-configurations and is populated by merging values from environment
// variables, command-line flags, an optional JSON file and built-in
// defaults.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as logging.
	App App `envPrefix:"APP_"`

	// Storage holds the local SQLite settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote authority endpoints and timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the sync scheduling settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// DevServer holds the settings of the in-memory remote authority
	// started by "mindful devserver".
	DevServer DevServer `envPrefix:"DEVSERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// LogFile is the path of the rotating client log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration of the local store.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the path of the SQLite database file, optionally with
	// driver query parameters (e.g. "mindful.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// Driver selects the database/sql driver: "sqlite3" (mattn, cgo) or
	// "sqlite" (modernc, pure Go).
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`
}

// Adapter holds the remote authority endpoints.
type Adapter struct {
	// Address is the base URL of the REST API (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// WSAddress is the live-update WebSocket URL. Empty disables the live
	// listener.
	// Env: ADAPTER_WS_ADDRESS
	WSAddress string `env:"WS_ADDRESS"`

	// RequestTimeout bounds every outbound HTTP request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the sync scheduling settings.
type Workers struct {
	// SyncInterval is the period of the timer trigger.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// CycleTimeout is the hard deadline of one sync cycle.
	// Env: WORKERS_CYCLE_TIMEOUT
	CycleTimeout time.Duration `env:"CYCLE_TIMEOUT"`

	// ConnectivityInterval is how often reachability is checked.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`

	// BackoffMin and BackoffMax bound the exponential delay inserted after
	// failed timer cycles.
	// Env: WORKERS_BACKOFF_MIN, WORKERS_BACKOFF_MAX
	BackoffMin time.Duration `env:"BACKOFF_MIN"`
	BackoffMax time.Duration `env:"BACKOFF_MAX"`

	// MoodsFullRefresh re-fetches the whole mood listing every cycle
	// instead of pulling changes since the watermark.
	// Env: WORKERS_MOODS_FULL_REFRESH
	MoodsFullRefresh bool `env:"MOODS_FULL_REFRESH"`
}

// DevServer holds the in-memory remote authority settings.
type DevServer struct {
	// Address is the listen address in "host:port" form.
	// Env: DEVSERVER_ADDRESS
	Address string `env:"ADDRESS"`

	// TokenSignKey signs the bearer tokens issued on login.
	// Env: DEVSERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: DEVSERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens.
	// Env: DEVSERVER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// defaultConfig holds the values used when no source sets a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: "info"},
		Storage: Storage{DB: DB{
			DSN:    "mindful.db",
			Driver: DriverMattn,
		}},
		Adapter: Adapter{
			Address:        "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			SyncInterval:         5 * time.Minute,
			CycleTimeout:         2 * time.Minute,
			ConnectivityInterval: 15 * time.Second,
			BackoffMin:           5 * time.Second,
			BackoffMax:           5 * time.Minute,
		},
		DevServer: DevServer{
			Address:       "localhost:8080",
			TokenSignKey:  "dev-secret",
			TokenIssuer:   "mindful-devserver",
			TokenDuration: 24 * time.Hour,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources.
// For every field the first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags (nil flags are skipped)
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flags).
		withJSON().
		withDefaults().
		build()
}
