// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	base := []string{
		"--db", filepath.Join(dir, "mindful.db"),
		"--db-driver", "sqlite",
		"--address", "http://127.0.0.1:1",
		"--log-file", filepath.Join(dir, "mindful.log"),
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, base...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	buildVersion = "v0.3.1"
	t.Cleanup(func() { buildVersion = "" })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: v0.3.1")
	assert.Contains(t, out, "Commit: N/A")
}

func TestStatusCommand_Offline(t *testing.T) {
	out, err := execute(t, "status")
	require.NoError(t, err)

	for _, c := range []string{"moods", "journals", "habits", "habit_entries"} {
		assert.Contains(t, out, c)
	}
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "remote: offline")
}

func TestSyncCommand_RequiresLogin(t *testing.T) {
	_, err := execute(t, "sync")
	assert.ErrorContains(t, err, "login required")
}

func TestResetWatermarkCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{name: "known collection", args: []string{"reset-watermark", "journals"}, want: "watermark of journals reset"},
		{name: "unknown collection", args: []string{"reset-watermark", "notes"}, wantErr: true},
		{name: "missing argument", args: []string{"reset-watermark"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestLoginCommand_RequiresFlags(t *testing.T) {
	_, err := execute(t, "login")
	assert.ErrorContains(t, err, "required flag")
}
