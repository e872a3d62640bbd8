// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"CONFIG",
	"APP_LOG_FILE",
	"APP_LOG_LEVEL",
	"STORAGE_DB_DSN",
	"STORAGE_DB_DRIVER",
	"ADAPTER_ADDRESS",
	"ADAPTER_WS_ADDRESS",
	"ADAPTER_REQUEST_TIMEOUT",
	"WORKERS_SYNC_INTERVAL",
	"WORKERS_CYCLE_TIMEOUT",
	"WORKERS_CONNECTIVITY_INTERVAL",
	"WORKERS_BACKOFF_MIN",
	"WORKERS_BACKOFF_MAX",
	"WORKERS_MOODS_FULL_REFRESH",
	"DEVSERVER_ADDRESS",
	"DEVSERVER_TOKEN_SIGN_KEY",
	"DEVSERVER_TOKEN_ISSUER",
	"DEVSERVER_TOKEN_DURATION",
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_FILE":  "/tmp/mindful.log",
		"APP_LOG_LEVEL": "warn",

		"STORAGE_DB_DSN":    "/data/mindful.db",
		"STORAGE_DB_DRIVER": "sqlite",

		"ADAPTER_ADDRESS":         "https://api.example.com",
		"ADAPTER_WS_ADDRESS":      "wss://api.example.com/ws",
		"ADAPTER_REQUEST_TIMEOUT": "15s",

		"WORKERS_SYNC_INTERVAL":         "1m",
		"WORKERS_CYCLE_TIMEOUT":         "45s",
		"WORKERS_CONNECTIVITY_INTERVAL": "10s",
		"WORKERS_BACKOFF_MIN":           "2s",
		"WORKERS_BACKOFF_MAX":           "1m",
		"WORKERS_MOODS_FULL_REFRESH":    "true",

		"DEVSERVER_ADDRESS":        "127.0.0.1:9000",
		"DEVSERVER_TOKEN_SIGN_KEY": "k",
		"DEVSERVER_TOKEN_ISSUER":   "iss",
		"DEVSERVER_TOKEN_DURATION": "2h",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/tmp/mindful.log", cfg.App.LogFile)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "/data/mindful.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.Address)
	assert.Equal(t, "wss://api.example.com/ws", cfg.Adapter.WSAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 45*time.Second, cfg.Workers.CycleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Workers.ConnectivityInterval)
	assert.Equal(t, 2*time.Second, cfg.Workers.BackoffMin)
	assert.Equal(t, time.Minute, cfg.Workers.BackoffMax)
	assert.True(t, cfg.Workers.MoodsFullRefresh)
	assert.Equal(t, "127.0.0.1:9000", cfg.DevServer.Address)
	assert.Equal(t, 2*time.Hour, cfg.DevServer.TokenDuration)
}

func TestParseEnv_Empty(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"WORKERS_SYNC_INTERVAL": "soon"})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidBool(t *testing.T) {
	setEnvVars(t, map[string]string{"WORKERS_MOODS_FULL_REFRESH": "maybe"})

	require.Error(t, parseEnv(&StructuredConfig{}))
}

// setEnvVars clears every config key and then sets vars for the test only.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}
