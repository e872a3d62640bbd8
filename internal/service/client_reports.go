// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"time"

	"github.com/MKhiriev/mindful-sync/models"
)

// TriggerReason tells why a cycle was requested. It is logged only.
type TriggerReason string

const (
	TriggerManual     TriggerReason = "manual"
	TriggerLogin      TriggerReason = "login"
	TriggerForeground TriggerReason = "foreground"
	TriggerTimer      TriggerReason = "timer"
	TriggerReconnect  TriggerReason = "reconnect"
	TriggerLive       TriggerReason = "live"
	TriggerMutation   TriggerReason = "mutation"
)

// PushResult summarises one push of a collection.
type PushResult struct {
	// Pushed is the number of rows confirmed and marked synced.
	Pushed int
	// Superseded rows were accepted by the server but edited locally while
	// the request was in flight; they stay pending.
	Superseded int
	// MarkFailures rows were accepted but could not be marked locally.
	// They are pushed again next cycle.
	MarkFailures int
}

// PullResult summarises one pull of a collection.
type PullResult struct {
	Received int
	Applied  int
	// Skipped rows had a pending local change and were left untouched.
	Skipped int
	// Invalid rows carried no uuid and were ignored.
	Invalid int
	Purged  int64
	// Watermark is the stored server_time after the pull; zero in listing
	// mode.
	Watermark time.Time
}

// CollectionReport is the outcome of one collection within a cycle.
type CollectionReport struct {
	Collection models.Collection
	Push       PushResult
	Pull       PullResult
	Err        error
}

// CycleReport is the outcome of one Trigger call.
type CycleReport struct {
	CycleID    string
	Reason     TriggerReason
	StartedAt  time.Time
	FinishedAt time.Time

	// Skipped is true when no cycle ran; SkipReason is one of
	// [ErrSyncDisabled], [ErrOffline] or [ErrCycleInProgress].
	Skipped    bool
	SkipReason error

	Collections []CollectionReport
}

// Err joins the errors of every failed collection, or returns SkipReason
// for a skipped cycle.
func (r CycleReport) Err() error {
	if r.Skipped {
		return r.SkipReason
	}
	var errs []error
	for _, c := range r.Collections {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errors.Join(errs...)
}

// Failed reports whether the cycle ran and at least one collection failed.
func (r CycleReport) Failed() bool {
	return !r.Skipped && r.Err() != nil
}

// Collection returns the report of c.
func (r CycleReport) Collection(c models.Collection) (CollectionReport, bool) {
	for _, cr := range r.Collections {
		if cr.Collection == c {
			return cr, true
		}
	}
	return CollectionReport{}, false
}

// CollectionStatus is the local sync state of one collection.
type CollectionStatus struct {
	Collection models.Collection
	Pending    int
	// LastSyncedAt is nil before the first successful pull.
	LastSyncedAt *time.Time
}
