// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUUID      = errors.New("invalid uuid")
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidColor     = errors.New("color must be a #RRGGBB hex value")
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyJournal     = errors.New("journal needs a title or content")
	ErrInvalidMoodUUID  = errors.New("invalid mood uuid")
	ErrInvalidFrequency = errors.New("invalid habit frequency")
	ErrInvalidHabitUUID = errors.New("invalid habit uuid")
	ErrInvalidEntryDate = errors.New("entry date must be YYYY-MM-DD")
)
