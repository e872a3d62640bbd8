// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntryDateLayout is the calendar day format of [HabitEntry.EntryDate].
const EntryDateLayout = "2006-01-02"

// HabitEntry records whether a habit was completed on a given day.
type HabitEntry struct {
	SyncMeta

	HabitUUID string `json:"habit_uuid"`
	EntryDate string `json:"entry_date"`
	Completed bool   `json:"completed"`
	Note      string `json:"note"`
}

// Collection returns [CollectionHabitEntries].
func (HabitEntry) Collection() Collection {
	return CollectionHabitEntries
}
