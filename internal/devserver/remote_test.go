// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mindful-sync/internal/validators"
	"github.com/MKhiriev/mindful-sync/models"
)

func items(t *testing.T, values ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func decodeJournals(t *testing.T, raw []json.RawMessage) []models.Journal {
	t.Helper()
	out := make([]models.Journal, len(raw))
	for i, r := range raw {
		require.NoError(t, json.Unmarshal(r, &out[i]))
	}
	return out
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestRemote_Authenticate(t *testing.T) {
	r := NewRemote()

	id, err := r.Authenticate(models.Credentials{Login: "alice", Password: "pw"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	again, err := r.Authenticate(models.Credentials{Login: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	_, err = r.Authenticate(models.Credentials{Login: "alice", Password: "nope"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = r.Authenticate(models.Credentials{Login: " ", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	other, err := r.Authenticate(models.Credentials{Login: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

// ── BulkSync ─────────────────────────────────────────────────────────────────

func TestRemote_BulkSync_IdempotentByUUID(t *testing.T) {
	r := NewRemote()
	ctx := context.Background()

	batch := items(t,
		models.Journal{SyncMeta: models.SyncMeta{UUID: "J1"}, Title: "one"},
		models.Journal{SyncMeta: models.SyncMeta{UUID: "J2"}, Title: "two"},
	)
	for range 3 {
		accepted, err := r.BulkSync(ctx, "u1", models.CollectionJournals, batch)
		require.NoError(t, err)
		assert.Equal(t, 2, accepted)
	}

	listed, err := r.List("u1", models.CollectionJournals)
	require.NoError(t, err)
	journals := decodeJournals(t, listed)
	require.Len(t, journals, 2)
	assert.Equal(t, int64(1), *journals[0].RemoteID)
	assert.Equal(t, int64(2), *journals[1].RemoteID)
}

func TestRemote_BulkSync_RejectsWholeBatch(t *testing.T) {
	r := NewRemote()
	ctx := context.Background()

	tests := []struct {
		name  string
		batch []json.RawMessage
		want  error
	}{
		{
			name:  "missing uuid",
			batch: items(t, models.Habit{SyncMeta: models.SyncMeta{UUID: "H1"}, Title: "ok", Frequency: models.FrequencyDaily}, models.Habit{Title: "x", Frequency: models.FrequencyDaily}),
			want:  validators.ErrInvalidUUID,
		},
		{
			name:  "bad frequency",
			batch: items(t, models.Habit{SyncMeta: models.SyncMeta{UUID: "H1"}, Title: "x", Frequency: "hourly"}),
			want:  validators.ErrInvalidFrequency,
		},
		{
			name:  "not json object",
			batch: []json.RawMessage{json.RawMessage(`[1]`)},
			want:  ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.BulkSync(ctx, "u1", models.CollectionHabits, tt.batch)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.ErrorIs(t, err, tt.want)

			listed, err := r.List("u1", models.CollectionHabits)
			require.NoError(t, err)
			assert.Empty(t, listed)
		})
	}
}

func TestRemote_UnknownCollection(t *testing.T) {
	r := NewRemote()

	_, err := r.BulkSync(context.Background(), "u1", "tasks", nil)
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, _, err = r.Sync("u1", "tasks", nil)
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = r.List("u1", "tasks")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

// ── Sync ─────────────────────────────────────────────────────────────────────

func TestRemote_Sync_ReturnsChangesAfterWatermark(t *testing.T) {
	r := NewRemote()
	fixed := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed } // frozen clock, ticks still advance
	ctx := context.Background()

	_, err := r.BulkSync(ctx, "u1", models.CollectionJournals, items(t, models.Journal{SyncMeta: models.SyncMeta{UUID: "J1"}, Title: "a"}))
	require.NoError(t, err)

	all, wm1, err := r.Sync("u1", models.CollectionJournals, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)

	none, wm2, err := r.Sync("u1", models.CollectionJournals, &wm1)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.True(t, wm2.After(wm1))

	_, err = r.BulkSync(ctx, "u1", models.CollectionJournals, items(t,
		models.Journal{SyncMeta: models.SyncMeta{UUID: "J2"}, Title: "b"},
		models.Journal{SyncMeta: models.SyncMeta{UUID: "J1"}, Title: "a2"},
	))
	require.NoError(t, err)

	changed, _, err := r.Sync("u1", models.CollectionJournals, &wm2)
	require.NoError(t, err)
	journals := decodeJournals(t, changed)
	require.Len(t, journals, 2)
	assert.Equal(t, "J2", journals[0].UUID)
	assert.Equal(t, "J1", journals[1].UUID)
	assert.Equal(t, "a2", journals[1].Title)
	assert.Equal(t, int64(1), *journals[1].RemoteID)
}

func TestRemote_UsersArePartitioned(t *testing.T) {
	r := NewRemote()

	_, err := r.BulkSync(context.Background(), "u1", models.CollectionMoods, items(t, models.Mood{SyncMeta: models.SyncMeta{UUID: "M1"}, Name: "calm"}))
	require.NoError(t, err)

	results, _, err := r.Sync("u2", models.CollectionMoods, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
