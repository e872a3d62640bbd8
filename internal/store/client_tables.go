// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/mindful-sync/models"
)

// Columns shared by every record table, in the order they surround the
// payload columns: uuid, remote_id, <payload...>, created_at, updated_at,
// synced, deleted.
const (
	colUUID      = "uuid"
	colRemoteID  = "remote_id"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
	colSynced    = "synced"
	colDeleted   = "deleted"
)

// recordTable describes how one record type maps onto its SQLite table.
// Only the payload columns differ between collections; the sync metadata
// columns are handled generically.
type recordTable[T any, P models.Record[T]] struct {
	name    string
	payload []string
	// values returns the payload column values of p in payload order.
	values func(p P) []any
	// fields returns scan destinations for the payload columns of p.
	fields func(p P) []any
}

func (t recordTable[T, P]) columns() []string {
	cols := make([]string, 0, len(t.payload)+6)
	cols = append(cols, colUUID, colRemoteID)
	cols = append(cols, t.payload...)
	return append(cols, colCreatedAt, colUpdatedAt, colSynced, colDeleted)
}

func (t recordTable[T, P]) insertValues(p P) []any {
	m := p.Meta()
	vals := make([]any, 0, len(t.payload)+6)
	vals = append(vals, m.UUID, m.RemoteID)
	vals = append(vals, t.values(p)...)
	return append(vals, formatTime(m.CreatedAt), formatTime(m.UpdatedAt), m.Synced, m.Deleted)
}

func (t recordTable[T, P]) scanDest(p P) []any {
	m := p.Meta()
	dest := make([]any, 0, len(t.payload)+6)
	dest = append(dest, &m.UUID, &m.RemoteID)
	dest = append(dest, t.fields(p)...)
	return append(dest, scanTime(&m.CreatedAt), scanTime(&m.UpdatedAt), &m.Synced, &m.Deleted)
}

func moodTable() recordTable[models.Mood, *models.Mood] {
	return recordTable[models.Mood, *models.Mood]{
		name:    string(models.CollectionMoods),
		payload: []string{"name", "emoji", "color"},
		values: func(m *models.Mood) []any {
			return []any{m.Name, m.Emoji, m.Color}
		},
		fields: func(m *models.Mood) []any {
			return []any{&m.Name, &m.Emoji, &m.Color}
		},
	}
}

func journalTable() recordTable[models.Journal, *models.Journal] {
	return recordTable[models.Journal, *models.Journal]{
		name:    string(models.CollectionJournals),
		payload: []string{"title", "content", "mood_uuid"},
		values: func(j *models.Journal) []any {
			return []any{j.Title, j.Content, j.MoodUUID}
		},
		fields: func(j *models.Journal) []any {
			return []any{&j.Title, &j.Content, &j.MoodUUID}
		},
	}
}

func habitTable() recordTable[models.Habit, *models.Habit] {
	return recordTable[models.Habit, *models.Habit]{
		name:    string(models.CollectionHabits),
		payload: []string{"title", "description", "frequency"},
		values: func(h *models.Habit) []any {
			return []any{h.Title, h.Description, string(h.Frequency)}
		},
		fields: func(h *models.Habit) []any {
			return []any{&h.Title, &h.Description, &h.Frequency}
		},
	}
}

func habitEntryTable() recordTable[models.HabitEntry, *models.HabitEntry] {
	return recordTable[models.HabitEntry, *models.HabitEntry]{
		name:    string(models.CollectionHabitEntries),
		payload: []string{"habit_uuid", "entry_date", "completed", "note"},
		values: func(e *models.HabitEntry) []any {
			return []any{e.HabitUUID, e.EntryDate, e.Completed, e.Note}
		},
		fields: func(e *models.HabitEntry) []any {
			return []any{&e.HabitUUID, &e.EntryDate, &e.Completed, &e.Note}
		},
	}
}
