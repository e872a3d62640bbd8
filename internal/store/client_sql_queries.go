// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/mindful-sync/models"
)

// builder emits SQLite "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// upsertLocalQuery inserts p or overwrites its payload. Local writes always
// leave the row pending (synced = 0) and never erase a known remote id.
func (t recordTable[T, P]) upsertLocalQuery(p P) (string, []any, error) {
	return builder.Insert(t.name).
		Columns(t.columns()...).
		Values(t.insertValues(p)...).
		Suffix(t.onConflict(false)).
		ToSql()
}

// applyRemoteQuery inserts p or overwrites a row that has no pending local
// change. The WHERE clause of the upsert skips pending rows inside the
// same statement, so the check and the write cannot interleave with a
// local mutation.
func (t recordTable[T, P]) applyRemoteQuery(p P) (string, []any, error) {
	return builder.Insert(t.name).
		Columns(t.columns()...).
		Values(t.insertValues(p)...).
		Suffix(t.onConflict(true)).
		ToSql()
}

func (t recordTable[T, P]) onConflict(remote bool) string {
	set := make([]string, 0, len(t.payload)+5)
	for _, col := range t.payload {
		set = append(set, col+" = excluded."+col)
	}
	set = append(set, colRemoteID+" = COALESCE(excluded."+colRemoteID+", "+t.name+"."+colRemoteID+")")
	if remote {
		set = append(set, colCreatedAt+" = excluded."+colCreatedAt)
	}
	set = append(set,
		colUpdatedAt+" = excluded."+colUpdatedAt,
		colSynced+" = excluded."+colSynced,
		colDeleted+" = excluded."+colDeleted,
	)

	suffix := "ON CONFLICT(" + colUUID + ") DO UPDATE SET " + strings.Join(set, ", ")
	if remote {
		suffix += " WHERE " + t.name + "." + colSynced + " = 1"
	}
	return suffix
}

func (t recordTable[T, P]) listUnsyncedQuery() (string, []any, error) {
	return builder.Select(t.columns()...).
		From(t.name).
		Where(sq.Eq{colSynced: false}).
		OrderBy(colUpdatedAt + " ASC").
		ToSql()
}

func (t recordTable[T, P]) countUnsyncedQuery() (string, []any, error) {
	return builder.Select("COUNT(*)").
		From(t.name).
		Where(sq.Eq{colSynced: false}).
		ToSql()
}

// markSyncedQuery flips exactly the pushed version of a row. A row mutated
// after it was read for the push keeps a different updated_at and stays
// pending.
func (t recordTable[T, P]) markSyncedQuery(uuid string, pushedUpdatedAt time.Time) (string, []any, error) {
	return builder.Update(t.name).
		Set(colSynced, true).
		Where(sq.And{
			sq.Eq{colUUID: uuid},
			sq.Eq{colUpdatedAt: formatTime(pushedUpdatedAt)},
		}).
		ToSql()
}

func (t recordTable[T, P]) getQuery(uuid string) (string, []any, error) {
	return builder.Select(t.columns()...).
		From(t.name).
		Where(sq.Eq{colUUID: uuid}).
		ToSql()
}

func (t recordTable[T, P]) queryQuery(filter models.QueryFilter) (string, []any, error) {
	q := builder.Select(t.columns()...).From(t.name)
	if !filter.IncludeDeleted {
		q = q.Where(sq.Eq{colDeleted: false})
	}
	if filter.UpdatedSince != nil {
		q = q.Where(sq.GtOrEq{colUpdatedAt: formatTime(*filter.UpdatedSince)})
	}
	q = q.OrderBy(colUpdatedAt+" DESC", colUUID+" ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q.ToSql()
}

func (t recordTable[T, P]) softDeleteQuery(uuid string, now time.Time) (string, []any, error) {
	return builder.Update(t.name).
		Set(colDeleted, true).
		Set(colSynced, false).
		Set(colUpdatedAt, formatTime(now)).
		Where(sq.Eq{colUUID: uuid}).
		ToSql()
}

// purgeQuery removes tombstones the remote authority has confirmed.
func (t recordTable[T, P]) purgeQuery() (string, []any, error) {
	return builder.Delete(t.name).
		Where(sq.And{
			sq.Eq{colDeleted: true},
			sq.Eq{colSynced: true},
		}).
		ToSql()
}

const (
	watermarksTable = "sync_watermarks"
	colCollection   = "collection_name"
	colLastSyncedAt = "last_synced_at"
)

func getWatermarkQuery(collection models.Collection) (string, []any, error) {
	return builder.Select(colLastSyncedAt).
		From(watermarksTable).
		Where(sq.Eq{colCollection: string(collection)}).
		ToSql()
}

func listWatermarksQuery() (string, []any, error) {
	return builder.Select(colCollection, colLastSyncedAt).
		From(watermarksTable).
		OrderBy(colCollection).
		ToSql()
}

// setWatermarkQuery upserts the watermark unless the stored value is newer.
func setWatermarkQuery(collection models.Collection, serverTime time.Time) (string, []any, error) {
	return builder.Insert(watermarksTable).
		Columns(colCollection, colLastSyncedAt).
		Values(string(collection), formatTime(serverTime)).
		Suffix("ON CONFLICT(" + colCollection + ") DO UPDATE SET " +
			colLastSyncedAt + " = excluded." + colLastSyncedAt +
			" WHERE " + watermarksTable + "." + colLastSyncedAt + " <= excluded." + colLastSyncedAt).
		ToSql()
}

func resetWatermarkQuery(collection models.Collection) (string, []any, error) {
	return builder.Delete(watermarksTable).
		Where(sq.Eq{colCollection: string(collection)}).
		ToSql()
}

const sessionsTable = "sessions"

func getSessionQuery() (string, []any, error) {
	return builder.Select("user_id", "token", "expires_at").
		From(sessionsTable).
		Where(sq.Eq{"id": 1}).
		ToSql()
}

func saveSessionQuery(session models.Session) (string, []any, error) {
	var expiresAt any
	if !session.ExpiresAt.IsZero() {
		expiresAt = formatTime(session.ExpiresAt)
	}
	return builder.Insert(sessionsTable).
		Columns("id", "user_id", "token", "expires_at").
		Values(1, session.UserID, session.Token, expiresAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, token = excluded.token, expires_at = excluded.expires_at").
		ToSql()
}

func deleteSessionQuery() (string, []any, error) {
	return builder.Delete(sessionsTable).Where(sq.Eq{"id": 1}).ToSql()
}
