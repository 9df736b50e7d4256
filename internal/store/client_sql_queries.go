// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-registry-keeper/models"
)

const (
	localRecordsTable   = "records"
	localDeletionsTable = "pending_deletions"
)

var localRecordColumns = []string{
	"id",
	"name",
	"kind",
	"status",
	"year",
	"location",
	"idempotency_key",
	"attempts",
	"last_error",
	"parked",
	"updated_at",
}

var localDeletionColumns = []string{
	"id",
	"attempts",
	"last_error",
	"parked",
	"created_at",
}

func localRecordValues(rec models.PendingRecord) []any {
	return []any{
		rec.ID,
		rec.Name,
		rec.Kind,
		rec.Status,
		rec.Year,
		rec.Location,
		rec.IdempotencyKey,
		rec.Attempts,
		rec.LastError,
		rec.Parked,
		toUnixMilli(rec.UpdatedAt),
	}
}

func buildSelectLocalRecordsQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	q := b.Select(localRecordColumns...).From(localRecordsTable)
	if where != nil {
		q = q.Where(where)
	}
	return q.OrderBy("id").ToSql()
}

// buildInsertLocalRecordQuery inserts without overwriting; a taken id
// affects zero rows.
func buildInsertLocalRecordQuery(b sq.StatementBuilderType, rec models.PendingRecord) (string, []any, error) {
	return b.Insert(localRecordsTable).
		Columns(localRecordColumns...).
		Values(localRecordValues(rec)...).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
}

func buildUpsertLocalRecordQuery(b sq.StatementBuilderType, rec models.PendingRecord) (string, []any, error) {
	return b.Insert(localRecordsTable).
		Columns(localRecordColumns...).
		Values(localRecordValues(rec)...).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name            = excluded.name,
			kind            = excluded.kind,
			status          = excluded.status,
			year            = excluded.year,
			location        = excluded.location,
			idempotency_key = excluded.idempotency_key,
			attempts        = excluded.attempts,
			last_error      = excluded.last_error,
			parked          = excluded.parked,
			updated_at      = excluded.updated_at`).
		ToSql()
}

func buildDeleteByIDQuery(b sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	return b.Delete(table).Where(sq.Eq{"id": id}).ToSql()
}

func buildMinLocalIDQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("MIN(id)").From(localRecordsTable).ToSql()
}

// buildRecordAttemptQuery bumps the attempt counter and parks the row once
// it reaches maxAttempts. SET expressions see the old column values.
func buildRecordAttemptQuery(b sq.StatementBuilderType, table string, id int64, lastErr string, maxAttempts int) (string, []any, error) {
	return b.Update(table).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", lastErr).
		Set("parked", sq.Expr("attempts + 1 >= ?", maxAttempts)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING parked").
		ToSql()
}

func buildRequeueQuery(b sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	return b.Update(table).
		Set("attempts", 0).
		Set("last_error", "").
		Set("parked", false).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertDeletionQuery(b sq.StatementBuilderType, id int64, createdAt time.Time) (string, []any, error) {
	return b.Insert(localDeletionsTable).
		Columns("id", "created_at").
		Values(id, toUnixMilli(createdAt)).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
}

func buildSelectDeletionsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(localDeletionColumns...).
		From(localDeletionsTable).
		OrderBy("created_at", "id").
		ToSql()
}

func toUnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
