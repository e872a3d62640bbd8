// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Journal is a free-form journal entry.
type Journal struct {
	SyncMeta

	Title   string `json:"title"`
	Content string `json:"content"`

	// MoodUUID references the [Mood] the entry was written in, if any.
	MoodUUID *string `json:"mood_uuid,omitempty"`
}

// Collection returns [CollectionJournals].
func (Journal) Collection() Collection {
	return CollectionJournals
}
