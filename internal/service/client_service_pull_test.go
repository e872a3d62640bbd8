// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/mock"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/models"
)

type pullMocks struct {
	repo       *mock.MockRecordRepository[models.Habit]
	watermarks *mock.MockWatermarkRepository
	tx         *mock.MockTransactor
	adapter    *mock.MockServerAdapter
}

func newTestPull(t *testing.T, ctrl *gomock.Controller, listing bool) (*pullReconciler[models.Habit, *models.Habit], pullMocks) {
	t.Helper()
	m := pullMocks{
		repo:       mock.NewMockRecordRepository[models.Habit](ctrl),
		watermarks: mock.NewMockWatermarkRepository(ctrl),
		tx:         mock.NewMockTransactor(ctrl),
		adapter:    mock.NewMockServerAdapter(ctrl),
	}
	m.repo.EXPECT().Collection().Return(models.CollectionHabits).AnyTimes()

	return newPullReconciler[models.Habit, *models.Habit](m.repo, m.watermarks, m.tx, m.adapter, listing), m
}

// runTx makes the transactor call fn and return its error, like a real
// transaction that commits on nil.
func runTx(m pullMocks) *gomock.Call {
	return m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, store.DBTX) error) error {
			return fn(ctx, nil)
		},
	)
}

var (
	t0 = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	t1 = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
)

// ── Incremental pull ─────────────────────────────────────────────────────────

func TestPull_Success_MergesAndAdvancesWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	results := rawJSON(t,
		models.Habit{SyncMeta: models.SyncMeta{UUID: "H1", RemoteID: ptr(int64(1))}, Title: "run"},
		models.Habit{SyncMeta: models.SyncMeta{UUID: "H2", RemoteID: ptr(int64(2))}, Title: "read"},
	)

	gomock.InOrder(
		m.watermarks.EXPECT().Get(gomock.Any(), models.CollectionHabits).Return(ptr(t0), nil),
		m.adapter.EXPECT().Sync(gomock.Any(), models.CollectionHabits, ptr(t0)).
			Return(models.SyncResponse{Results: results, ServerTime: t1}, nil),
		runTx(m),
		m.repo.EXPECT().ApplyRemote(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ store.DBTX, h *models.Habit) (bool, error) {
				assert.Equal(t, "H1", h.UUID)
				return true, nil
			}),
		// H2 is pending locally
		m.repo.EXPECT().ApplyRemote(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
		m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), models.CollectionHabits, t1).Return(nil),
		m.repo.EXPECT().PurgeSyncedTombstones(gomock.Any()).Return(int64(3), nil),
	)

	result, err := pull.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PullResult{Received: 2, Applied: 1, Skipped: 1, Purged: 3, Watermark: t1}, result)
}

func TestPull_FirstSyncSendsNullWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	m.watermarks.EXPECT().Get(gomock.Any(), models.CollectionHabits).Return(nil, nil)
	m.adapter.EXPECT().Sync(gomock.Any(), models.CollectionHabits, (*time.Time)(nil)).
		Return(models.SyncResponse{ServerTime: t1}, nil)
	runTx(m)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), models.CollectionHabits, t1).Return(nil)
	m.repo.EXPECT().PurgeSyncedTombstones(gomock.Any()).Return(int64(0), nil)

	result, err := pull.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, t1, result.Watermark)
}

func TestPull_NetworkDrop_NoTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ptr(t0), nil)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{}, adapter.ErrNetwork)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := pull.Pull(context.Background())
	assert.ErrorIs(t, err, ErrPullFailed)
	assert.ErrorIs(t, err, adapter.ErrNetwork)
}

func TestPull_MergeFailure_WatermarkNotWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)
	errDisk := errors.New("disk full")

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ptr(t0), nil)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.SyncResponse{
		Results:    rawJSON(t, models.Habit{SyncMeta: models.SyncMeta{UUID: "H1"}}, models.Habit{SyncMeta: models.SyncMeta{UUID: "H2"}}),
		ServerTime: t1,
	}, nil)
	runTx(m)
	m.repo.EXPECT().ApplyRemote(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.repo.EXPECT().ApplyRemote(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errDisk)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.repo.EXPECT().PurgeSyncedTombstones(gomock.Any()).Times(0)

	_, err := pull.Pull(context.Background())
	assert.ErrorIs(t, err, ErrPullFailed)
	assert.ErrorIs(t, err, errDisk)
}

func TestPull_WatermarkRegressionRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ptr(t1), nil)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.SyncResponse{ServerTime: t0}, nil)
	runTx(m)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), models.CollectionHabits, t0).Return(store.ErrWatermarkRegression)

	_, err := pull.Pull(context.Background())
	assert.ErrorIs(t, err, ErrPullFailed)
	assert.ErrorIs(t, err, ErrWatermarkRegression)
}

func TestPull_MalformedRecordFailsBeforeMerge(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.SyncResponse{
		Results:    []json.RawMessage{json.RawMessage(`{"uuid": 5}`)},
		ServerTime: t1,
	}, nil)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)

	_, err := pull.Pull(context.Background())
	assert.ErrorIs(t, err, ErrPullFailed)
	assert.ErrorIs(t, err, adapter.ErrDecodingResponse)
}

func TestPull_RecordWithoutUUIDIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.SyncResponse{
		Results:    rawJSON(t, models.Habit{Title: "orphan"}),
		ServerTime: t1,
	}, nil)
	runTx(m)
	m.repo.EXPECT().ApplyRemote(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, store.ErrInvalidRecord)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), t1).Return(nil)
	m.repo.EXPECT().PurgeSyncedTombstones(gomock.Any()).Return(int64(0), nil)

	result, err := pull.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Invalid)
	assert.Zero(t, result.Applied)
}

func TestPull_PurgeFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, false)

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.SyncResponse{ServerTime: t1}, nil)
	runTx(m)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().PurgeSyncedTombstones(gomock.Any()).Return(int64(0), store.ErrStorageBusy)

	result, err := pull.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, t1, result.Watermark)
}

// ── Listing mode ─────────────────────────────────────────────────────────────

func TestPull_ListingMode_LeavesWatermarkAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, true)

	m.watermarks.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	m.watermarks.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.adapter.EXPECT().Sync(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	m.adapter.EXPECT().List(gomock.Any(), models.CollectionHabits).
		Return(rawJSON(t, models.Habit{SyncMeta: models.SyncMeta{UUID: "H1"}, Title: "run"}), nil)
	runTx(m)
	m.repo.EXPECT().ApplyRemote(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.repo.EXPECT().PurgeSyncedTombstones(gomock.Any()).Return(int64(0), nil)

	result, err := pull.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.True(t, result.Watermark.IsZero())
}

func TestPull_ListingMode_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	pull, m := newTestPull(t, ctrl, true)

	m.adapter.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, adapter.ErrUnauthorized)

	_, err := pull.Pull(context.Background())
	assert.ErrorIs(t, err, ErrPullFailed)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}
