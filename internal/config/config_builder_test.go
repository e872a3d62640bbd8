// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func parsedFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return flags
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that the first non-zero value is kept
// and zero fields are filled by later sources.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{Address: "http://first"}},
		&StructuredConfig{Adapter: Adapter{Address: "http://second", RequestTimeout: time.Second}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://first", cfg.Adapter.Address)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
}

// TestBuild_RejectsUnknownLogLevel verifies structured validation.
func TestBuild_RejectsUnknownLogLevel(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{LogLevel: "loud"}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoPath verifies that nothing is appended when no source
// names a JSON file.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_MissingFile verifies that a bad path is recorded as an error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b.withJSON()
	assert.Error(t, b.err)
}

// ── GetStructuredConfig / GetClientConfig ─────────────────────────────────────

// TestGetClientConfig_Defaults verifies that defaults alone form a valid
// client config.
func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "mindful.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DriverMattn, cfg.Storage.DB.Driver)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.Address)
	assert.Equal(t, 2*time.Minute, cfg.Workers.CycleTimeout)
}

// TestGetClientConfig_Priority verifies env > flags > JSON > defaults.
func TestGetClientConfig_Priority(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"adapter": map[string]any{"address": "http://json:1", "request_timeout": "7s"},
		"storage": map[string]any{"db": map[string]any{"dsn": "json.db"}},
		"workers": map[string]any{"sync_interval": "9m"},
	})
	setEnvVars(t, map[string]string{
		"CONFIG":          jsonPath,
		"ADAPTER_ADDRESS": "http://env:1",
	})

	cfg, err := GetClientConfig(parsedFlags(t, "-a", "http://flag:1", "-d", "flag.db"))
	require.NoError(t, err)

	assert.Equal(t, "http://env:1", cfg.Adapter.Address)
	assert.Equal(t, "flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 9*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 15*time.Second, cfg.Workers.ConnectivityInterval)
}

// TestGetClientConfig_InvalidJSONPath verifies error propagation.
func TestGetClientConfig_InvalidJSONPath(t *testing.T) {
	setEnvVars(t, map[string]string{"CONFIG": "/missing/config.json"})

	_, err := GetClientConfig(nil)
	assert.Error(t, err)
}

// TestGetDevServerConfig_Defaults verifies the dev server projection.
func TestGetDevServerConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetDevServerConfig(parsedFlags(t, "--listen", "127.0.0.1:8181"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8181", cfg.Address)
	assert.Equal(t, "mindful-devserver", cfg.TokenIssuer)
}
