// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devserver

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/internal/validators"
	"github.com/MKhiriev/mindful-sync/models"
)

// syncRecord is the view of a decoded record the remote needs.
type syncRecord interface {
	Meta() *models.SyncMeta
}

var decoders = map[models.Collection]func(json.RawMessage) (syncRecord, error){
	models.CollectionMoods:        decodeRecord[models.Mood, *models.Mood],
	models.CollectionJournals:     decodeRecord[models.Journal, *models.Journal],
	models.CollectionHabits:       decodeRecord[models.Habit, *models.Habit],
	models.CollectionHabitEntries: decodeRecord[models.HabitEntry, *models.HabitEntry],
}

func decodeRecord[T any, P models.Record[T]](raw json.RawMessage) (syncRecord, error) {
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return P(&record), nil
}

type devUser struct {
	id       string
	password string
}

type storedRecord struct {
	id        int64
	changedAt time.Time
	body      json.RawMessage
}

type collectionState struct {
	nextID int64
	byUUID map[string]*storedRecord
}

// Remote is the in-memory state of the dev remote authority.
//
// Every accepted write is stamped with a strictly increasing server clock.
// An incremental sync returns the records stamped after the client's
// watermark, and its server_time is itself a clock tick, so a write that
// lands after the response is always newer than the returned server_time.
type Remote struct {
	mu    sync.Mutex
	users map[string]devUser
	data  map[string]map[models.Collection]*collectionState

	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time
	lastTick  time.Time
}

func NewRemote() *Remote {
	return &Remote{
		users:     make(map[string]devUser),
		data:      make(map[string]map[models.Collection]*collectionState),
		validator: validators.NewRecordValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
	}
}

// Authenticate returns the user id of creds. A login seen for the first
// time is registered with the given password.
func (r *Remote) Authenticate(creds models.Credentials) (string, error) {
	login := strings.TrimSpace(creds.Login)
	if login == "" || creds.Password == "" {
		return "", ErrInvalidCredentials
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[login]
	if !ok {
		user = devUser{id: r.ids.Generate(), password: creds.Password}
		r.users[login] = user
		return user.id, nil
	}
	if user.password != creds.Password {
		return "", ErrWrongPassword
	}
	return user.id, nil
}

// BulkSync upserts items by uuid. Items seen before keep their server id,
// so replaying a batch changes nothing but the stored body. The batch is
// rejected as a whole when any item is invalid.
func (r *Remote) BulkSync(ctx context.Context, userID string, c models.Collection, items []json.RawMessage) (int, error) {
	decode, ok := decoders[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	records := make([]syncRecord, 0, len(items))
	for i, raw := range items {
		record, err := decode(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: item %d: %w", ErrInvalidRecord, i, err)
		}
		if err = r.validator.Validate(ctx, record); err != nil {
			return 0, fmt.Errorf("%w: item %d: %w", ErrInvalidRecord, i, err)
		}
		records = append(records, record)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.collection(userID, c)
	for _, record := range records {
		meta := record.Meta()

		stored, ok := state.byUUID[meta.UUID]
		if !ok {
			state.nextID++
			stored = &storedRecord{id: state.nextID}
			state.byUUID[meta.UUID] = stored
		}

		id := stored.id
		meta.RemoteID = &id
		body, err := json.Marshal(record)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		stored.body = body
		stored.changedAt = r.tick()
	}

	return len(records), nil
}

// Sync returns the records changed after since, oldest first, and the
// server time to use as the next watermark. A nil since returns everything.
func (r *Remote) Sync(userID string, c models.Collection, since *time.Time) ([]json.RawMessage, time.Time, error) {
	if !c.Valid() {
		return nil, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.collection(userID, c)
	changed := make([]*storedRecord, 0, len(state.byUUID))
	for _, stored := range state.byUUID {
		if since == nil || stored.changedAt.After(*since) {
			changed = append(changed, stored)
		}
	}
	slices.SortFunc(changed, func(a, b *storedRecord) int {
		return a.changedAt.Compare(b.changedAt)
	})

	results := make([]json.RawMessage, 0, len(changed))
	for _, stored := range changed {
		results = append(results, stored.body)
	}
	return results, r.tick(), nil
}

// List returns every record of the collection, tombstones included,
// ordered by server id.
func (r *Remote) List(userID string, c models.Collection) ([]json.RawMessage, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.collection(userID, c)
	all := make([]*storedRecord, 0, len(state.byUUID))
	for _, stored := range state.byUUID {
		all = append(all, stored)
	}
	slices.SortFunc(all, func(a, b *storedRecord) int {
		return cmp.Compare(a.id, b.id)
	})

	results := make([]json.RawMessage, 0, len(all))
	for _, stored := range all {
		results = append(results, stored.body)
	}
	return results, nil
}

// collection returns the state of c for userID, creating it. r.mu must be
// held.
func (r *Remote) collection(userID string, c models.Collection) *collectionState {
	byCollection, ok := r.data[userID]
	if !ok {
		byCollection = make(map[models.Collection]*collectionState)
		r.data[userID] = byCollection
	}
	state, ok := byCollection[c]
	if !ok {
		state = &collectionState{byUUID: make(map[string]*storedRecord)}
		byCollection[c] = state
	}
	return state
}

// tick advances the server clock. r.mu must be held.
func (r *Remote) tick() time.Time {
	t := r.now().UTC()
	if !t.After(r.lastTick) {
		t = r.lastTick.Add(time.Nanosecond)
	}
	r.lastTick = t
	return t
}
