// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-registry-keeper/models"
)

func viewIDs(s models.ViewSnapshot) []int64 {
	ids := make([]int64, 0, len(s.Records))
	for _, r := range s.Records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRegistryView_ReplaceSortsRecords(t *testing.T) {
	v := NewRegistryView()

	v.replace(models.OriginRemote, models.RecordFilter{}, []models.Record{{ID: 9}, {ID: -2}, {ID: 3}}, []int64{-2})

	snap := v.Snapshot()
	assert.Equal(t, []int64{-2, 3, 9}, viewIDs(snap))
	assert.True(t, snap.IsPending(-2))
	assert.False(t, snap.IsPending(3))
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, models.OriginRemote, snap.Origin)
}

func TestRegistryView_UpsertRespectsFilter(t *testing.T) {
	v := NewRegistryView()
	v.replace(models.OriginRemote, models.RecordFilter{Kind: "bridge"}, []models.Record{{ID: 1, Kind: "bridge"}}, nil)

	v.upsert(models.OriginStagedLocal, models.Record{ID: -1, Kind: "tunnel"}, true)
	assert.Equal(t, []int64{1}, viewIDs(v.Snapshot()))

	v.upsert(models.OriginStagedLocal, models.Record{ID: -2, Kind: "bridge"}, true)
	snap := v.Snapshot()
	assert.Equal(t, []int64{-2, 1}, viewIDs(snap))
	assert.True(t, snap.IsPending(-2))

	// an edit that leaves the filter drops the row
	v.upsert(models.OriginRemote, models.Record{ID: 1, Kind: "tunnel"}, false)
	assert.Equal(t, []int64{-2}, viewIDs(v.Snapshot()))
}

func TestRegistryView_Promote(t *testing.T) {
	v := NewRegistryView()
	v.replace(models.OriginLocalFallback, models.RecordFilter{}, []models.Record{{ID: -1, Name: "A"}, {ID: 4}}, []int64{-1})

	v.promote(-1, models.Record{ID: 101, Name: "A"})

	snap := v.Snapshot()
	assert.Equal(t, []int64{4, 101}, viewIDs(snap))
	assert.Empty(t, snap.Pending)
}

func TestRegistryView_SnapshotIsACopy(t *testing.T) {
	v := NewRegistryView()
	v.replace(models.OriginRemote, models.RecordFilter{}, []models.Record{{ID: 1, Name: "A"}}, []int64{1})

	snap := v.Snapshot()
	snap.Records[0].Name = "changed"
	snap.Pending[7] = true

	fresh := v.Snapshot()
	assert.Equal(t, "A", fresh.Records[0].Name)
	assert.False(t, fresh.IsPending(7))
}

func TestRegistryView_SubscribersGetLatest(t *testing.T) {
	v := NewRegistryView()
	updates, cancel := v.Subscribe()

	v.setState(models.Offline)
	v.upsert(models.OriginStagedLocal, models.Record{ID: -1}, true)
	v.remove(models.OriginStagedLocal, -1)

	latest := <-updates
	assert.Equal(t, uint64(3), latest.Version)
	assert.Equal(t, models.Offline, latest.State)
	assert.Empty(t, latest.Records)

	select {
	case s := <-updates:
		t.Fatalf("unexpected extra snapshot %d", s.Version)
	default:
	}

	cancel()
	cancel()
	_, ok := <-updates
	assert.False(t, ok, "cancel closes the channel")
}

func TestRegistryView_SetStateIgnoresNoop(t *testing.T) {
	v := NewRegistryView()

	v.setState(models.Online)

	assert.Zero(t, v.Snapshot().Version)
}

func TestRegistryView_Close(t *testing.T) {
	v := NewRegistryView()
	updates, cancel := v.Subscribe()

	v.close()

	_, ok := <-updates
	assert.False(t, ok)
	cancel()

	late, _ := v.Subscribe()
	_, ok = <-late
	require.False(t, ok, "subscriptions after close are closed at once")

	// publishing after close keeps versions moving without panicking
	v.remove(models.OriginRemote, 1)
	assert.Equal(t, uint64(1), v.Snapshot().Version)
}
