package store

import (
	"context"

	"github.com/MKhiriev/go-registry-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository is the authoritative record store of the registry server.
type RecordRepository interface {
	// List returns the records matching filter ordered by id.
	List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error)
	// GetByID returns the record or [ErrRecordNotFound].
	GetByID(ctx context.Context, id int64) (models.Record, error)
	// Create inserts rec under a new id. When idempotencyKey was used
	// before, the earlier record is returned and created is false.
	Create(ctx context.Context, rec models.Record, idempotencyKey string) (stored models.Record, created bool, err error)
	// Update replaces the record with rec.ID or returns [ErrRecordNotFound].
	Update(ctx context.Context, rec models.Record) (models.Record, error)
	// Delete removes the record and its components or returns
	// [ErrRecordNotFound].
	Delete(ctx context.Context, id int64) error
}

// ComponentRepository stores the component set of each record.
type ComponentRepository interface {
	// List returns the component names of a record ordered by name.
	List(ctx context.Context, recordID int64) ([]string, error)
	// Add attaches a component; [ErrComponentExists] on a repeat,
	// [ErrRecordNotFound] for an unknown record.
	Add(ctx context.Context, recordID int64, name string) error
	// Remove detaches a component or returns [ErrComponentNotFound].
	Remove(ctx context.Context, recordID int64, name string) error
}
