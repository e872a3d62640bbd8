// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/service"
	"github.com/MKhiriev/mindful-sync/models"
)

var errLiveClosed = errors.New("live connection closed by server")

// TokenSource returns the bearer token the live connection dials with.
type TokenSource interface {
	Token() string
}

// LiveWorker keeps a live update connection open and triggers a sync cycle
// when the server announces a change. Dropped connections are reopened with
// exponential backoff.
type LiveWorker struct {
	listener    adapter.LiveListener
	tokens      TokenSource
	syncService service.ClientSyncService

	backoffMin time.Duration
	backoffMax time.Duration

	// rejected is the token refused by the live endpoint; it is not dialed
	// again until the session changes
	rejected    string
	hasRejected bool

	// pending coalesces change events that arrive while a cycle runs
	pending chan struct{}
	logger  *logger.Logger
}

func NewLiveWorker(listener adapter.LiveListener, tokens TokenSource, syncService service.ClientSyncService, backoffMin, backoffMax time.Duration, log *logger.Logger) *LiveWorker {
	if backoffMin <= 0 {
		backoffMin = time.Second
	}
	if backoffMax < backoffMin {
		backoffMax = backoffMin
	}
	return &LiveWorker{
		listener:    listener,
		tokens:      tokens,
		syncService: syncService,
		backoffMin:  backoffMin,
		backoffMax:  backoffMax,
		pending:     make(chan struct{}, 1),
		logger:      log,
	}
}

func (w *LiveWorker) Run(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.triggerLoop(ctx)
	}()

	b := retry.NewExponential(w.backoffMin)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithCappedDuration(w.backoffMax, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		token := w.tokens.Token()
		if w.hasRejected && token == w.rejected {
			return retry.RetryableError(adapter.ErrUnauthorized)
		}

		err := w.listener.Listen(ctx, w.onEvent)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, adapter.ErrLiveDisabled):
			return err
		case errors.Is(err, adapter.ErrUnauthorized):
			w.rejected, w.hasRejected = token, true
			w.logger.Warn().Msg("live endpoint rejected the session, waiting for a new login")
			return retry.RetryableError(err)
		case err == nil:
			err = errLiveClosed
		}
		w.hasRejected = false
		w.logger.Warn().Err(err).Msg("live connection lost, reconnecting")
		return retry.RetryableError(err)
	})
	if errors.Is(err, adapter.ErrLiveDisabled) {
		w.logger.Info().Msg("live updates disabled, relying on the sync timer")
	}

	<-done
}

func (w *LiveWorker) onEvent(event models.LiveEvent) {
	w.logger.Debug().Str("collection", event.Collection.String()).Msg("remote change announced")
	select {
	case w.pending <- struct{}{}:
	default:
	}
}

func (w *LiveWorker) triggerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
			w.syncService.Trigger(ctx, service.TriggerLive)
		}
	}
}
