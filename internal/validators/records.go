// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/mindful-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUUID targets the client-generated record identity.
	FieldUUID = "uuid"

	// FieldName targets the mood name.
	FieldName = "name"

	// FieldColor targets the optional mood color.
	FieldColor = "color"

	// FieldTitle targets the habit title.
	FieldTitle = "title"

	// FieldJournalBody requires a journal to have a title or content.
	FieldJournalBody = "journal_body"

	// FieldMoodUUID targets the optional mood reference of a journal.
	FieldMoodUUID = "mood_uuid"

	// FieldFrequency targets the habit frequency.
	FieldFrequency = "frequency"

	// FieldHabitUUID targets the habit reference of a habit entry.
	FieldHabitUUID = "habit_uuid"

	// FieldEntryDate targets the calendar day of a habit entry.
	FieldEntryDate = "entry_date"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RecordValidator validates the syncable record types before they are
// written locally or accepted by the development server.
type RecordValidator struct{}

// NewRecordValidator returns a [Validator] for [models.Mood],
// [models.Journal], [models.Habit] and [models.HabitEntry], by value or by
// pointer.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Mood:
		return v.validateMood(ctx, value, fields...)
	case *models.Mood:
		return v.validateMood(ctx, *value, fields...)

	case models.Journal:
		return v.validateJournal(ctx, value, fields...)
	case *models.Journal:
		return v.validateJournal(ctx, *value, fields...)

	case models.Habit:
		return v.validateHabit(ctx, value, fields...)
	case *models.Habit:
		return v.validateHabit(ctx, *value, fields...)

	case models.HabitEntry:
		return v.validateHabitEntry(ctx, value, fields...)
	case *models.HabitEntry:
		return v.validateHabitEntry(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func validUUID(s string) bool {
	return strings.TrimSpace(s) != "" && len(s) <= 64
}

func (v *RecordValidator) validateMood(_ context.Context, mood models.Mood, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUUID, FieldName, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldUUID:
			if !validUUID(mood.UUID) {
				return ErrInvalidUUID
			}
		case FieldName:
			// tombstones carry no payload
			if !mood.Deleted && strings.TrimSpace(mood.Name) == "" {
				return ErrEmptyName
			}
		case FieldColor:
			if mood.Color != "" && !colorPattern.MatchString(mood.Color) {
				return ErrInvalidColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateJournal(_ context.Context, journal models.Journal, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUUID, FieldJournalBody, FieldMoodUUID}
	}

	for _, f := range fields {
		switch f {
		case FieldUUID:
			if !validUUID(journal.UUID) {
				return ErrInvalidUUID
			}
		case FieldJournalBody:
			if !journal.Deleted && strings.TrimSpace(journal.Title) == "" && strings.TrimSpace(journal.Content) == "" {
				return ErrEmptyJournal
			}
		case FieldMoodUUID:
			if journal.MoodUUID != nil && !validUUID(*journal.MoodUUID) {
				return ErrInvalidMoodUUID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateHabit(_ context.Context, habit models.Habit, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUUID, FieldTitle, FieldFrequency}
	}

	for _, f := range fields {
		switch f {
		case FieldUUID:
			if !validUUID(habit.UUID) {
				return ErrInvalidUUID
			}
		case FieldTitle:
			if !habit.Deleted && strings.TrimSpace(habit.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldFrequency:
			if habit.Deleted && habit.Frequency == "" {
				continue
			}
			if _, err := models.ParseFrequency(string(habit.Frequency)); err != nil {
				return ErrInvalidFrequency
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateHabitEntry(_ context.Context, entry models.HabitEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUUID, FieldHabitUUID, FieldEntryDate}
	}

	for _, f := range fields {
		switch f {
		case FieldUUID:
			if !validUUID(entry.UUID) {
				return ErrInvalidUUID
			}
		case FieldHabitUUID:
			if !entry.Deleted && !validUUID(entry.HabitUUID) {
				return ErrInvalidHabitUUID
			}
		case FieldEntryDate:
			if entry.Deleted && entry.EntryDate == "" {
				continue
			}
			if _, err := time.Parse(models.EntryDateLayout, entry.EntryDate); err != nil {
				return ErrInvalidEntryDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
