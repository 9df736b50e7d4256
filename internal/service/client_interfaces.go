package service

import (
	"context"

	"github.com/MKhiriev/go-registry-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=mocks/mock_client_service.go -package=mocks

// RegistryService is the offline-first face of the registry. Every call
// tries the remote registry first. When it is unreachable, reads are served
// from the local replica and writes are staged there; the result's Origin
// tells which path was taken. Rejections by the registry are returned
// unchanged and never masked by local state.
type RegistryService interface {
	// List returns the records matching filter sorted by id. On a remote
	// answer the reconciliation sweep runs first, and the list is fetched
	// again when the sweep pushed anything.
	List(ctx context.Context, filter models.RecordFilter) (models.ListResult, error)

	// Get returns one record. Negative ids are read from the replica only.
	Get(ctx context.Context, id int64) (models.RecordResult, error)

	// Create stores a new record. Offline, the record is staged under the
	// next free negative id.
	Create(ctx context.Context, rec models.Record) (models.WriteResult, error)

	// Update replaces a record. Offline, or for a negative id, the new value
	// is staged and replaces any earlier staged value.
	Update(ctx context.Context, rec models.Record) (models.WriteResult, error)

	// Delete removes a record. Offline deletes of registry records leave a
	// tombstone that the sweep pushes later.
	Delete(ctx context.Context, id int64) (models.WriteResult, error)

	// ListComponents, AddComponent and RemoveComponent always go to the
	// registry; failures are returned, never staged.
	ListComponents(ctx context.Context, recordID int64) ([]string, error)
	AddComponent(ctx context.Context, recordID int64, name string) error
	RemoveComponent(ctx context.Context, recordID int64, name string) error

	// Sweep pushes the staged changes to the registry. Concurrent callers
	// share one run.
	Sweep(ctx context.Context) (models.SweepReport, error)

	// State returns the current connectivity state.
	State() models.ConnectivityState

	// Parked lists the staged changes excluded from sweeps.
	Parked(ctx context.Context) (models.ParkedSet, error)

	// Requeue returns a parked change with the given id to the sweep.
	Requeue(ctx context.Context, id int64) error

	// View returns the published current list.
	View() *RegistryView

	// Close waits for background sweeps and closes view subscriptions.
	Close() error
}
