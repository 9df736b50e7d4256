package service

import (
	"context"

	"github.com/MKhiriev/go-registry-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

// RecordService is the server-side record API.
type RecordService interface {
	List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error)
	Get(ctx context.Context, id int64) (models.Record, error)
	// Create stores rec. created is false when idempotencyKey was seen
	// before and the earlier record is returned.
	Create(ctx context.Context, rec models.Record, idempotencyKey string) (stored models.Record, created bool, err error)
	Update(ctx context.Context, rec models.Record) (models.Record, error)
	Delete(ctx context.Context, id int64) error
}

// ComponentService manages the component set of a record.
type ComponentService interface {
	List(ctx context.Context, recordID int64) ([]string, error)
	Add(ctx context.Context, recordID int64, name string) error
	Remove(ctx context.Context, recordID int64, name string) error
}

// AppInfoService reports build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string

	// CheckHealth reports whether the registry database answers.
	CheckHealth(ctx context.Context) error
}

// HealthChecker is implemented by storages that can report their
// connection state.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// validation.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService
}
