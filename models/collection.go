// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Collection names a group of syncable records. The same name is used for
// the local table, the remote endpoint prefix and the watermark row.
type Collection string

const (
	CollectionMoods        Collection = "moods"
	CollectionJournals     Collection = "journals"
	CollectionHabits       Collection = "habits"
	CollectionHabitEntries Collection = "habit_entries"
)

// Collections lists every known collection in sync order: moods precede
// journals because journals reference moods.
var Collections = []Collection{
	CollectionMoods,
	CollectionJournals,
	CollectionHabits,
	CollectionHabitEntries,
}

// TopicSyncCompleted is emitted once after every finished sync cycle.
const TopicSyncCompleted = "sync_completed"

// UpdatedTopic returns the event topic announced after the collection was
// successfully reconciled, e.g. "journals_updated".
func (c Collection) UpdatedTopic() string {
	return string(c) + "_updated"
}

// String implements [fmt.Stringer].
func (c Collection) String() string {
	return string(c)
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCollection converts a user supplied name into a [Collection].
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown collection %q", name)
	}
	return c, nil
}
