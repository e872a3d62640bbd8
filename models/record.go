// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Record is the type constraint shared by the generic repositories and
// reconcilers. P is always a pointer to a concrete record type T that embeds
// [SyncMeta].
//
//	var _ Record[Journal] = (*Journal)(nil)
type Record[T any] interface {
	*T
	Meta() *SyncMeta
	Collection() Collection
}
