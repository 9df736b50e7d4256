// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport to the registry server.
//
// The primary abstraction is [RegistryAdapter], which decouples the sync
// engine from the protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRegistryAdapter]).
//
// Every error is classified: [ErrUnreachable] when the server could not be
// reached, [ErrRejected] when it answered with a refusal. Rejections also wrap
// a specific sentinel ([ErrNotFound], [ErrConflict], ...), so callers use
// [errors.Is] for both levels.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-registry-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/registry_adapter_mock.go -package=mock

// RegistryAdapter defines communication with the authoritative registry.
// Implementations map transport failures to [ErrUnreachable] and refusals to
// [ErrRejected]; they never consult local state.
type RegistryAdapter interface {
	// List returns the records matching filter. An empty filter lists all.
	List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error)

	// Get returns the record with the given id.
	Get(ctx context.Context, id int64) (models.Record, error)

	// Create stores rec and returns it with the server-assigned id. The
	// incoming id is ignored. A non-empty idempotencyKey makes a repeated
	// call return the record created by the first one.
	Create(ctx context.Context, rec models.Record, idempotencyKey string) (models.Record, error)

	// Update replaces the record with rec.ID and returns the stored value.
	Update(ctx context.Context, rec models.Record) (models.Record, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error

	// ListComponents returns the component names of a record.
	ListComponents(ctx context.Context, recordID int64) ([]string, error)

	// AddComponent attaches a component to a record.
	AddComponent(ctx context.Context, recordID int64, name string) error

	// RemoveComponent detaches a component from a record.
	RemoveComponent(ctx context.Context, recordID int64, name string) error

	// Ping checks that the registry answers.
	Ping(ctx context.Context) error
}
