// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/events"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/models"
)

const defaultCycleTimeout = 2 * time.Minute

// collectionSyncer reconciles one collection.
type collectionSyncer interface {
	Collection() models.Collection
	Push(ctx context.Context) (PushResult, error)
	Pull(ctx context.Context) (PullResult, error)
}

type collectionPipeline[T any, P models.Record[T]] struct {
	push *pushReconciler[T, P]
	pull *pullReconciler[T, P]
}

func newCollectionPipeline[T any, P models.Record[T]](
	repo store.RecordRepository[T],
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	listing bool,
) collectionSyncer {
	return &collectionPipeline[T, P]{
		push: newPushReconciler[T, P](repo, serverAdapter),
		pull: newPullReconciler[T, P](repo, storages.Watermarks, storages.DB, serverAdapter, listing),
	}
}

func (c *collectionPipeline[T, P]) Collection() models.Collection {
	return c.push.repo.Collection()
}

func (c *collectionPipeline[T, P]) Push(ctx context.Context) (PushResult, error) {
	return c.push.Push(ctx)
}

func (c *collectionPipeline[T, P]) Pull(ctx context.Context) (PullResult, error) {
	return c.pull.Pull(ctx)
}

// syncStep is one entry of the cycle plan. A step whose dependency failed
// in the same cycle is skipped.
type syncStep struct {
	syncer    collectionSyncer
	dependsOn models.Collection
}

// SyncOrchestrator decides when a sync cycle runs and executes it: push
// then pull for every collection in plan order. It implements
// [ClientSyncService].
type SyncOrchestrator struct {
	adapter adapter.ServerAdapter
	bus     *events.Bus
	plan    []syncStep

	cycleTimeout time.Duration
	ids          *utils.UUIDGenerator
	now          func() time.Time

	// sessions, when set, is consulted before every cycle and overrides
	// the enabled flag
	sessions      SessionSource
	// rejectedToken is the stored token the remote answered 401 to
	rejectedToken atomic.Pointer[string]

	enabled    atomic.Bool
	inFlight   atomic.Bool
	lastReport atomic.Pointer[CycleReport]

	logger *logger.Logger
}

// NewSyncOrchestrator wires the four collections in their fixed order:
// moods, journals (skipped when moods failed), habits, habit entries.
// Sync starts disabled until [SyncOrchestrator.SetEnabled] is called.
func NewSyncOrchestrator(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	bus *events.Bus,
	cfg config.ClientWorkers,
	log *logger.Logger,
) *SyncOrchestrator {
	plan := []syncStep{
		{syncer: newCollectionPipeline[models.Mood, *models.Mood](storages.Moods, storages, serverAdapter, cfg.MoodsFullRefresh)},
		{syncer: newCollectionPipeline[models.Journal, *models.Journal](storages.Journals, storages, serverAdapter, false), dependsOn: models.CollectionMoods},
		{syncer: newCollectionPipeline[models.Habit, *models.Habit](storages.Habits, storages, serverAdapter, false)},
		{syncer: newCollectionPipeline[models.HabitEntry, *models.HabitEntry](storages.HabitEntries, storages, serverAdapter, false)},
	}

	return newSyncOrchestrator(plan, serverAdapter, bus, cfg.CycleTimeout, log)
}

func newSyncOrchestrator(plan []syncStep, serverAdapter adapter.ServerAdapter, bus *events.Bus, cycleTimeout time.Duration, log *logger.Logger) *SyncOrchestrator {
	if cycleTimeout <= 0 {
		cycleTimeout = defaultCycleTimeout
	}
	return &SyncOrchestrator{
		adapter:      serverAdapter,
		bus:          bus,
		plan:         plan,
		cycleTimeout: cycleTimeout,
		ids:          utils.NewUUIDGenerator(),
		now:          time.Now,
		logger:       log,
	}
}

// SetSessionSource makes every cycle re-read the stored session instead of
// trusting the in-memory gate. Call it before the first Trigger.
func (o *SyncOrchestrator) SetSessionSource(sessions SessionSource) {
	o.sessions = sessions
}

// SetEnabled implements [ClientSyncService].
func (o *SyncOrchestrator) SetEnabled(enabled bool) {
	if o.enabled.Swap(enabled) != enabled {
		o.logger.Info().Bool("enabled", enabled).Msg("sync gate changed")
	}
}

// Enabled implements [ClientSyncService].
func (o *SyncOrchestrator) Enabled() bool {
	return o.enabled.Load()
}

// LastReport implements [ClientSyncService].
func (o *SyncOrchestrator) LastReport() (CycleReport, bool) {
	r := o.lastReport.Load()
	if r == nil {
		return CycleReport{}, false
	}
	return *r, true
}

// Trigger implements [ClientSyncService]. Errors are logged and reported in
// the returned [CycleReport]; they are never delivered to event observers
// as failures.
func (o *SyncOrchestrator) Trigger(ctx context.Context, reason TriggerReason) CycleReport {
	report := CycleReport{Reason: reason, StartedAt: o.now()}

	if o.sessions == nil && !o.enabled.Load() {
		return o.skip(report, ErrSyncDisabled)
	}
	// claimed before the first blocking call so overlapping triggers drop
	if !o.inFlight.CompareAndSwap(false, true) {
		return o.skip(report, ErrCycleInProgress)
	}
	defer o.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, o.cycleTimeout)
	defer cancel()

	if err := o.authorize(ctx); err != nil {
		o.logger.Debug().Err(err).Msg("no usable session, cycle skipped")
		return o.skip(report, err)
	}

	report.CycleID = o.ids.Generate()
	log := &logger.Logger{Logger: o.logger.With().
		Str("cycle_id", report.CycleID).
		Str("reason", string(reason)).
		Logger()}
	ctx = context.WithValue(ctx, utils.CycleIDCtxKey, report.CycleID)
	ctx = log.WithContext(ctx)

	if err := o.adapter.Ping(ctx); err != nil {
		log.Debug().Err(err).Msg("remote unreachable, cycle skipped")
		return o.skip(report, fmt.Errorf("%w: %w", ErrOffline, err))
	}

	log.Info().Msg("sync cycle started")

	failed := make(map[models.Collection]bool, len(o.plan))
	for _, step := range o.plan {
		c := step.syncer.Collection()
		cr := CollectionReport{Collection: c}

		switch {
		case step.dependsOn != "" && failed[step.dependsOn]:
			cr.Err = fmt.Errorf("%w: %s", ErrDependencyFailed, step.dependsOn)
		case !o.enabled.Load():
			cr.Err = ErrSyncDisabled
		case ctx.Err() != nil:
			cr.Err = ctx.Err()
		default:
			o.syncCollection(ctx, step.syncer, &cr)
		}

		if cr.Err != nil {
			failed[c] = true
			log.Warn().Err(cr.Err).Str("collection", c.String()).Msg("collection not synced")
		} else {
			o.bus.Emit(c.UpdatedTopic(), cr)
		}
		report.Collections = append(report.Collections, cr)
	}

	report.FinishedAt = o.now()
	o.lastReport.Store(&report)

	log.Info().
		Bool("failed", report.Failed()).
		Dur("took", report.FinishedAt.Sub(report.StartedAt)).
		Msg("sync cycle finished")

	o.bus.Emit(models.TopicSyncCompleted, report)
	return report
}

// syncCollection pushes then pulls one collection. Pull runs only after a
// successful push so the server has every local change before its state is
// merged back.
func (o *SyncOrchestrator) syncCollection(ctx context.Context, syncer collectionSyncer, cr *CollectionReport) {
	collectionLog := logger.FromContext(ctx).WithCollection(syncer.Collection().String())
	ctx = collectionLog.WithContext(ctx)

	cr.Push, cr.Err = syncer.Push(ctx)
	if cr.Err == nil {
		cr.Pull, cr.Err = syncer.Pull(ctx)
	}

	if errors.Is(cr.Err, adapter.ErrUnauthorized) {
		collectionLog.Warn().Msg("remote rejected the session, disabling sync until next login")
		if o.sessions != nil {
			token := o.adapter.Token()
			o.rejectedToken.Store(&token)
		}
		o.SetEnabled(false)
	}
}

// authorize reads the stored session and opens or closes the gate. A
// session whose token was rejected by the remote keeps sync closed until a
// new login stores a different token.
func (o *SyncOrchestrator) authorize(ctx context.Context) error {
	if o.sessions == nil {
		return nil
	}

	session, err := o.sessions.Active(ctx)
	if err != nil {
		o.SetEnabled(false)
		return fmt.Errorf("%w: %w", ErrSyncDisabled, err)
	}
	if rejected := o.rejectedToken.Load(); rejected != nil && *rejected == session.Token {
		o.SetEnabled(false)
		return fmt.Errorf("%w: %w", ErrSyncDisabled, ErrSessionExpired)
	}

	o.adapter.SetToken(session.Token)
	o.SetEnabled(true)
	return nil
}

func (o *SyncOrchestrator) skip(report CycleReport, reason error) CycleReport {
	report.Skipped = true
	report.SkipReason = reason
	report.FinishedAt = o.now()
	return report
}
