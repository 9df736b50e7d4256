package store

import (
	"context"

	"github.com/MKhiriev/go-registry-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the client replica: records that could not be
// committed to the remote registry yet, keyed by id.
type LocalRecordRepository interface {
	// GetAll returns every replica row, parked ones included, ordered by id.
	GetAll(ctx context.Context) ([]models.PendingRecord, error)
	// GetByID returns the row with id or [ErrRecordNotFound].
	GetByID(ctx context.Context, id int64) (models.PendingRecord, error)
	// Add inserts rec; [ErrDuplicateID] when the id is taken.
	Add(ctx context.Context, rec models.PendingRecord) error
	// Put inserts or replaces the row with rec.ID.
	Put(ctx context.Context, rec models.PendingRecord) error
	// Delete removes the row with id. Removing an absent id is not an error.
	Delete(ctx context.Context, id int64) error
	// MinID returns the lowest id; ok is false when the replica is empty.
	MinID(ctx context.Context) (id int64, ok bool, err error)
	// Pending returns the rows eligible for a sweep (not parked).
	Pending(ctx context.Context) ([]models.PendingRecord, error)
	// Parked returns the rows excluded from sweeps.
	Parked(ctx context.Context) ([]models.PendingRecord, error)
	// RecordAttempt counts a rejected push and reports whether the row is
	// parked now.
	RecordAttempt(ctx context.Context, id int64, lastErr string, maxAttempts int) (parked bool, err error)
	// Requeue clears the attempt counter and un-parks the row.
	Requeue(ctx context.Context, id int64) error
}

// LocalDeletionRepository stores tombstones for remote records deleted while
// the registry was unreachable.
type LocalDeletionRepository interface {
	// Add records a tombstone for id. Adding an existing one is a no-op.
	Add(ctx context.Context, id int64) error
	// List returns all tombstones in the order they were recorded.
	List(ctx context.Context) ([]models.PendingDeletion, error)
	// RecordAttempt counts a rejected push and reports whether the
	// tombstone is parked now.
	RecordAttempt(ctx context.Context, id int64, lastErr string, maxAttempts int) (parked bool, err error)
	// Requeue clears the attempt counter and un-parks the tombstone.
	Requeue(ctx context.Context, id int64) error
	// Delete drops the tombstone for id.
	Delete(ctx context.Context, id int64) error
}
