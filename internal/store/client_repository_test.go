package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/models"
)

// newTestReplica opens a migrated in-memory replica on the pure-Go driver.
func newTestReplica(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:", DriverName: "sqlite"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func pending(id int64, name string) models.PendingRecord {
	return models.PendingRecord{
		Record:         models.Record{ID: id, Name: name, Kind: "bridge", Status: "planned", Year: 1999, Location: "Berlin"},
		IdempotencyKey: "key-" + name,
		UpdatedAt:      time.UnixMilli(1_700_000_000_000).UTC(),
	}
}

// ── records ─────────────────────────────────────────────────────────────────

func TestLocalRecordRepository_AddGet(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, pending(-1, "A")))

	got, err := repo.GetByID(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, pending(-1, "A"), got)
}

func TestLocalRecordRepository_AddDuplicate(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, pending(-1, "A")))
	err := repo.Add(ctx, pending(-1, "B"))

	assert.ErrorIs(t, err, ErrDuplicateID)
	got, err := repo.GetByID(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name, "the first row must survive")
}

func TestLocalRecordRepository_GetMissing(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestLocalRecordRepository_PutUpserts(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, pending(7, "remote edit")))
	changed := pending(7, "second edit")
	changed.Attempts = 0
	require.NoError(t, repo.Put(ctx, changed))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second edit", all[0].Name)
}

func TestLocalRecordRepository_Delete(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, pending(-1, "A")))
	require.NoError(t, repo.Delete(ctx, -1))
	require.NoError(t, repo.Delete(ctx, -1), "deleting an absent id is not an error")

	_, err := repo.GetByID(ctx, -1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestLocalRecordRepository_MinID(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	_, ok, err := repo.MinID(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty replica")

	require.NoError(t, repo.Put(ctx, pending(12, "remote")))
	require.NoError(t, repo.Add(ctx, pending(-3, "C")))
	require.NoError(t, repo.Add(ctx, pending(-1, "A")))

	minID, ok, err := repo.MinID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(-3), minID)
}

func TestLocalRecordRepository_GetAllSortedByID(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	for _, id := range []int64{5, -2, -1, 3} {
		require.NoError(t, repo.Put(ctx, pending(id, "x")))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)

	ids := make([]int64, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{-2, -1, 3, 5}, ids)
}

func TestLocalRecordRepository_AttemptsAndParking(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, pending(-1, "A")))
	require.NoError(t, repo.Add(ctx, pending(-2, "B")))

	parked, err := repo.RecordAttempt(ctx, -1, "bad request: name", 2)
	require.NoError(t, err)
	assert.False(t, parked)

	parked, err = repo.RecordAttempt(ctx, -1, "bad request: name again", 2)
	require.NoError(t, err)
	assert.True(t, parked)

	got, err := repo.GetByID(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, "bad request: name again", got.LastError)
	assert.True(t, got.Parked)

	pendingRows, err := repo.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pendingRows, 1)
	assert.Equal(t, int64(-2), pendingRows[0].ID)

	parkedRows, err := repo.Parked(ctx)
	require.NoError(t, err)
	require.Len(t, parkedRows, 1)
	assert.Equal(t, int64(-1), parkedRows[0].ID)

	require.NoError(t, repo.Requeue(ctx, -1))
	got, err = repo.GetByID(ctx, -1)
	require.NoError(t, err)
	assert.Zero(t, got.Attempts)
	assert.Empty(t, got.LastError)
	assert.False(t, got.Parked)
}

func TestLocalRecordRepository_AttemptMissing(t *testing.T) {
	repo := NewLocalRecordRepository(newTestReplica(t), logger.Nop())
	ctx := context.Background()

	_, err := repo.RecordAttempt(ctx, -9, "x", 5)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, repo.Requeue(ctx, -9), ErrRecordNotFound)
}

// ── tombstones ──────────────────────────────────────────────────────────────

func TestLocalDeletionRepository_Lifecycle(t *testing.T) {
	db := newTestReplica(t)
	repo := NewLocalDeletionRepository(db, logger.Nop()).(*localDeletionRepository)
	ctx := context.Background()

	tick := time.UnixMilli(1_700_000_000_000)
	repo.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	require.NoError(t, repo.Add(ctx, 20))
	require.NoError(t, repo.Add(ctx, 10))
	require.NoError(t, repo.Add(ctx, 20), "a repeated tombstone is a no-op")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(20), list[0].ID, "tombstones come back in recording order")
	assert.Equal(t, int64(10), list[1].ID)
	assert.False(t, list[0].CreatedAt.IsZero())

	parked, err := repo.RecordAttempt(ctx, 10, "conflict", 1)
	require.NoError(t, err)
	assert.True(t, parked)

	require.NoError(t, repo.Requeue(ctx, 10))
	require.NoError(t, repo.Delete(ctx, 20))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.PendingDeletion{ID: 10, CreatedAt: list[0].CreatedAt}, list[0])
}

func TestLocalDeletionRepository_RejectsLocalIDs(t *testing.T) {
	repo := NewLocalDeletionRepository(newTestReplica(t), logger.Nop())

	assert.Error(t, repo.Add(context.Background(), -1))
}

// ── connection ──────────────────────────────────────────────────────────────

func TestNewClientStorages_FileDSN(t *testing.T) {
	dsn := t.TempDir() + "/nested/replica.db"

	s, err := NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: dsn, DriverName: "sqlite"},
	}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RecordRepository.Add(context.Background(), pending(-1, "A")))
	assert.FileExists(t, dsn)
}

func TestNewConnectSQLite_UnknownDriver(t *testing.T) {
	_, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:", DriverName: "nope"}, logger.Nop())

	assert.Error(t, err)
}

func TestIsInMemoryDSN(t *testing.T) {
	assert.True(t, isInMemoryDSN(":memory:"))
	assert.True(t, isInMemoryDSN("file:replica?mode=memory&cache=shared"))
	assert.False(t, isInMemoryDSN("/var/lib/registry/replica.db"))
}
