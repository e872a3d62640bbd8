// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Mood is a user-defined mood that journals may reference.
type Mood struct {
	SyncMeta

	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Collection returns [CollectionMoods].
func (Mood) Collection() Collection {
	return CollectionMoods
}
