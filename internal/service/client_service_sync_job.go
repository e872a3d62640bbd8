// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService

	backoffMin time.Duration
	backoffMax time.Duration

	nudge chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that triggers syncService on a
// timer. After a failed cycle the next attempt follows an exponential
// backoff between backoffMin and backoffMax instead of the interval; a
// successful cycle resets it. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, backoffMin, backoffMax time.Duration) ClientSyncJob {
	if backoffMin <= 0 {
		backoffMin = 5 * time.Second
	}
	if backoffMax < backoffMin {
		backoffMax = backoffMin
	}
	return &clientSyncJob{
		syncService: syncService,
		backoffMin:  backoffMin,
		backoffMax:  backoffMax,
		nudge:       make(chan struct{}, 1),
	}
}

func (j *clientSyncJob) newBackoff() retry.Backoff {
	b := retry.NewExponential(j.backoffMin)
	b = retry.WithJitterPercent(10, b)
	return retry.WithCappedDuration(j.backoffMax, b)
}

// Nudge implements ClientSyncJob. It requests a cycle as soon as the job
// goroutine is free. Nudges while one is already queued are merged.
func (j *clientSyncJob) Nudge() {
	select {
	case j.nudge <- struct{}{}:
	default:
	}
}

// Start implements ClientSyncJob.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTimer(interval)
		defer t.Stop()

		backoff := j.newBackoff()
		for {
			reason := TriggerTimer
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
			case <-j.nudge:
				reason = TriggerMutation
			}

			report := j.syncService.Trigger(jobCtx, reason)

			next := interval
			switch {
			case report.Failed():
				if d, stop := backoff.Next(); !stop && d < interval {
					next = d
				}
			case !report.Skipped:
				backoff = j.newBackoff()
			}
			t.Reset(next)
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call
// when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
