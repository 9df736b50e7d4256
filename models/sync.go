// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConnectivityState is the engine's view of whether the remote registry is
// reachable.
type ConnectivityState int

const (
	// Online is the optimistic initial state.
	Online ConnectivityState = iota
	// Offline is entered on any failure classified as unreachable.
	Offline
)

func (s ConnectivityState) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Origin tells the caller where the result of an operation came from, so a
// degraded answer is never mistaken for a normal one.
type Origin int

const (
	// OriginRemote means the remote registry answered authoritatively.
	OriginRemote Origin = iota
	// OriginLocalFallback means a read was served from the local replica.
	OriginLocalFallback
	// OriginStagedLocal means a write was saved locally and is not synced yet.
	OriginStagedLocal
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginLocalFallback:
		return "local-fallback"
	case OriginStagedLocal:
		return "staged-local"
	default:
		return "unknown"
	}
}

// RecordResult is the outcome of a single-record read.
type RecordResult struct {
	Origin Origin `json:"origin"`
	Record Record `json:"record"`
}

// ListResult is the outcome of a registry listing.
type ListResult struct {
	Origin Origin `json:"origin"`

	// Records is sorted ascending by id.
	Records []Record `json:"records"`

	// Pending holds the ids of records in Records that only exist in the
	// local replica or carry unsynced local edits.
	Pending []int64 `json:"pending,omitempty"`

	// Drained is the number of staged changes the reconciliation sweep
	// pushed while producing this listing.
	Drained int `json:"drained"`
}

// WriteResult is the outcome of create, update and delete. Delete fills only
// Record.ID.
type WriteResult struct {
	Origin Origin `json:"origin"`
	Record Record `json:"record"`
}

// PendingRecord is a replica row that has not been mirrored to the remote
// registry yet.
type PendingRecord struct {
	Record

	// IdempotencyKey is sent with the remote create so a push repeated after
	// a crash does not create a second remote record.
	IdempotencyKey string `json:"idempotency_key"`

	// Attempts counts pushes the remote registry rejected.
	Attempts int `json:"attempts"`

	// LastError is the most recent rejection reason.
	LastError string `json:"last_error,omitempty"`

	// Parked rows exceeded the attempt limit and are skipped by sweeps until
	// re-queued.
	Parked bool `json:"parked"`

	UpdatedAt time.Time `json:"updated_at"`
}

// PendingDeletion is a tombstone for a remote record deleted while offline.
type PendingDeletion struct {
	ID        int64     `json:"id"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	Parked    bool      `json:"parked"`
	CreatedAt time.Time `json:"created_at"`
}

// ParkedSet lists the staged changes excluded from sweeps.
type ParkedSet struct {
	Records   []PendingRecord   `json:"records"`
	Deletions []PendingDeletion `json:"deletions"`
}

// Len returns the number of parked entries.
func (p ParkedSet) Len() int {
	return len(p.Records) + len(p.Deletions)
}

// SweepReport summarises one reconciliation sweep.
type SweepReport struct {
	// Pushed counts staged records accepted by the remote registry.
	Pushed int `json:"pushed"`
	// Deleted counts tombstones applied remotely.
	Deleted int `json:"deleted"`
	// Failed counts entries left pending.
	Failed int `json:"failed"`
	// Parked counts entries that hit the attempt limit during this sweep.
	Parked int `json:"parked"`
	// Unreachable is set when at least one push failed to reach the remote.
	Unreachable bool `json:"unreachable"`
}

// Drained returns the number of entries removed from the pending set.
func (r SweepReport) Drained() int {
	return r.Pushed + r.Deleted
}
