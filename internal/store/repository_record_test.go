// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/models"
)

func newMockPostgres(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = conn.Close()
	})

	return NewPostgresDB(conn, logger.Nop()), mock
}

func recordRows(records ...models.Record) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "kind", "status", "year", "location"})
	for _, r := range records {
		rows.AddRow(r.ID, r.Name, r.Kind, r.Status, r.Year, r.Location)
	}
	return rows
}

var bridge = models.Record{ID: 101, Name: "A", Kind: "bridge", Status: "planned", Year: 1999, Location: "Berlin"}

// ── List / GetByID ──────────────────────────────────────────────────────────

func TestRecordRepository_ListFiltered(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, kind, status, year, location FROM records WHERE kind = $1 AND status = $2 ORDER BY id`)).
		WithArgs("bridge", "planned").
		WillReturnRows(recordRows(bridge))

	got, err := repo.List(context.Background(), models.RecordFilter{Kind: "bridge", Status: "planned"})

	require.NoError(t, err)
	assert.Equal(t, []models.Record{bridge}, got)
}

func TestRecordRepository_ListEmpty(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, kind, status, year, location FROM records ORDER BY id`)).
		WillReturnRows(recordRows())

	got, err := repo.List(context.Background(), models.RecordFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM records WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(recordRows())

	_, err := repo.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordRepository_TransientFailure(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})

	_, err := repo.List(context.Background(), models.RecordFilter{})

	assert.ErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRecordRepository_PermanentFailure(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})

	_, err := repo.List(context.Background(), models.RecordFilter{})

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrTransient)
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestRecordRepository_CreateWithKey(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO records (name,kind,status,year,location,idempotency_key) VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (idempotency_key) DO NOTHING RETURNING`)).
		WithArgs("A", "bridge", "planned", 1999, "Berlin", "key-1").
		WillReturnRows(recordRows(bridge))

	in := bridge
	in.ID = 0
	got, created, err := repo.Create(context.Background(), in, "key-1")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, bridge, got)
}

func TestRecordRepository_CreateRepeatedKey(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(`INSERT INTO records`).
		WillReturnRows(recordRows())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM records WHERE idempotency_key = $1`)).
		WithArgs("key-1").
		WillReturnRows(recordRows(bridge))

	got, created, err := repo.Create(context.Background(), models.Record{Name: "A"}, "key-1")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, bridge, got)
}

func TestRecordRepository_CreateWithoutKey(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1,$2,$3,$4,$5,$6) RETURNING`)).
		WithArgs("A", "", "", 0, "", driver.Value(nil)).
		WillReturnRows(recordRows(models.Record{ID: 1, Name: "A"}))

	got, created, err := repo.Create(context.Background(), models.Record{Name: "A"}, "")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), got.ID)
}

// ── Update / Delete ─────────────────────────────────────────────────────────

func TestRecordRepository_Update(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE records SET name = $1, kind = $2, status = $3, year = $4, location = $5, updated_at = NOW() WHERE id = $6 RETURNING`)).
		WithArgs("A", "bridge", "planned", 1999, "Berlin", int64(101)).
		WillReturnRows(recordRows(bridge))

	got, err := repo.Update(context.Background(), bridge)

	require.NoError(t, err)
	assert.Equal(t, bridge, got)
}

func TestRecordRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery(`UPDATE records`).WillReturnRows(recordRows())

	_, err := repo.Update(context.Background(), bridge)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockPostgres(t)
			repo := NewRecordRepository(db, logger.Nop())

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE id = $1`)).
				WithArgs(int64(101)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), 101)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// ── components ──────────────────────────────────────────────────────────────

func TestComponentRepository_List(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewComponentRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name FROM record_components WHERE record_id = $1 ORDER BY name`)).
		WithArgs(int64(101)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("deck").AddRow("pier"))

	got, err := repo.List(context.Background(), 101)

	require.NoError(t, err)
	assert.Equal(t, []string{"deck", "pier"}, got)
}

func TestComponentRepository_AddErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{name: "duplicate", code: pgerrcode.UniqueViolation, wantErr: ErrComponentExists},
		{name: "unknown record", code: pgerrcode.ForeignKeyViolation, wantErr: ErrRecordNotFound},
		{name: "other", code: pgerrcode.DataException, wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockPostgres(t)
			repo := NewComponentRepository(db, logger.Nop())

			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO record_components (record_id,name) VALUES ($1,$2)`)).
				WithArgs(int64(101), "deck").
				WillReturnError(&pgconn.PgError{Code: tt.code})

			err := repo.Add(context.Background(), 101, "deck")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComponentRepository_Remove(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewComponentRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM record_components WHERE name = $1 AND record_id = $2`)).
		WithArgs("deck", int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM record_components`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Remove(context.Background(), 101, "deck"))
	assert.ErrorIs(t, repo.Remove(context.Background(), 101, "deck"), ErrComponentNotFound)
}

// ── classification ──────────────────────────────────────────────────────────

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.CannotConnectNow}))
	assert.Equal(t, NonRetryable, c.Classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, NonRetryable, c.Classify(assert.AnError))
	assert.Equal(t, NonRetryable, c.Classify(nil))
}
