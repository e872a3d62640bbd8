// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"
)

// timeLayout is RFC 3339 with a fixed nine-digit fraction. Timestamps are
// stored as UTC TEXT in this layout so that string comparison and ORDER BY
// follow chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timeScanner reads a TEXT timestamp column into dst. NULL yields the zero
// time. Drivers that already decode the column into time.Time are accepted
// too.
type timeScanner struct {
	dst *time.Time
}

func scanTime(dst *time.Time) *timeScanner {
	return &timeScanner{dst: dst}
}

// Scan implements sql.Scanner.
func (s *timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dst = time.Time{}
		return nil
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("unsupported time column type %T", src)
	}
}

func (s *timeScanner) parse(v string) error {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return fmt.Errorf("error parsing time column %q: %w", v, err)
	}
	*s.dst = t.UTC()
	return nil
}
