// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events is a small in-process publish/subscribe bus used to tell
// observers (UI, CLI, tests) that a collection was reconciled or a sync
// cycle finished.
//
// A [Bus] is constructed explicitly and injected; there is no package-level
// instance.
package events

import (
	"sync"

	"github.com/MKhiriev/mindful-sync/internal/logger"
)

// Handler receives the payload passed to [Bus.Emit].
type Handler func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously, in subscription order, to the handlers
// registered for a topic.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	topics map[string][]subscription

	logger *logger.Logger
}

// NewBus returns an empty [Bus].
func NewBus(logger *logger.Logger) *Bus {
	return &Bus{
		topics: make(map[string][]subscription),
		logger: logger,
	}
}

// On registers handler for topic and returns the function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus) On(topic string, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.topics[topic] = append(b.topics[topic], subscription{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// copy so a snapshot held by a running Emit is not mutated
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.topics, topic)
		} else {
			b.topics[topic] = next
		}
		return
	}
}

// Emit calls every handler subscribed to topic at the moment of the call.
// Handlers may subscribe or unsubscribe while being called; the changes
// apply to the next Emit. A panicking handler is recovered and logged and
// the remaining handlers still run.
func (b *Bus) Emit(topic string, payload any) {
	b.mu.Lock()
	snapshot := b.topics[topic]
	b.mu.Unlock()

	for _, s := range snapshot {
		b.call(topic, s.handler, payload)
	}
}

func (b *Bus) call(topic string, handler Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("func", "Bus.Emit").
				Str("topic", topic).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()
	handler(payload)
}

// Subscribers returns the number of handlers registered for topic.
func (b *Bus) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}
