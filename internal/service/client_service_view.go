package service

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-registry-keeper/models"
)

// RegistryView publishes the engine's current list of records. Every change
// produces a new snapshot with a higher Version, sorted ascending by id.
// Subscribers get the latest snapshot only: a slow reader skips
// intermediate versions instead of blocking the engine.
type RegistryView struct {
	mu      sync.RWMutex
	snap    models.ViewSnapshot
	filter  models.RecordFilter
	subs    map[int]chan models.ViewSnapshot
	nextSub int
	closed  bool
}

// NewRegistryView returns an empty view in the Online state.
func NewRegistryView() *RegistryView {
	return &RegistryView{
		snap: models.ViewSnapshot{
			State:   models.Online,
			Records: []models.Record{},
			Pending: map[int64]bool{},
		},
		subs: make(map[int]chan models.ViewSnapshot),
	}
}

// Snapshot returns a copy of the current snapshot.
func (v *RegistryView) Snapshot() models.ViewSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return cloneSnapshot(v.snap)
}

// Filter returns the filter of the last listing.
func (v *RegistryView) Filter() models.RecordFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.filter
}

// Subscribe returns a channel receiving every later snapshot (latest wins)
// and a function that ends the subscription. The channel is closed when the
// subscription ends or the view is closed.
func (v *RegistryView) Subscribe() (<-chan models.ViewSnapshot, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan models.ViewSnapshot, 1)
	if v.closed {
		close(ch)
		return ch, func() {}
	}

	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()

			if sub, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(sub)
			}
		})
	}
}

// replace publishes a fresh listing.
func (v *RegistryView) replace(origin models.Origin, filter models.RecordFilter, records []models.Record, pending []int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = filter
	v.snap.Origin = origin
	v.snap.Records = slices.Clone(records)
	sortRecords(v.snap.Records)
	v.snap.Pending = make(map[int64]bool, len(pending))
	for _, id := range pending {
		v.snap.Pending[id] = true
	}

	v.publishLocked()
}

// upsert applies a single written record.
func (v *RegistryView) upsert(origin models.Origin, rec models.Record, pending bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Origin = origin
	v.snap.Records = slices.DeleteFunc(v.snap.Records, func(r models.Record) bool { return r.ID == rec.ID })
	delete(v.snap.Pending, rec.ID)
	if v.filter.Matches(rec) {
		v.snap.Records = append(v.snap.Records, rec)
		sortRecords(v.snap.Records)
		if pending {
			v.snap.Pending[rec.ID] = true
		}
	}

	v.publishLocked()
}

// remove drops the record with id.
func (v *RegistryView) remove(origin models.Origin, id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Origin = origin
	v.snap.Records = slices.DeleteFunc(v.snap.Records, func(r models.Record) bool { return r.ID == id })
	delete(v.snap.Pending, id)

	v.publishLocked()
}

// promote swaps a staged record for the copy the registry accepted.
func (v *RegistryView) promote(localID int64, rec models.Record) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Records = slices.DeleteFunc(v.snap.Records, func(r models.Record) bool {
		return r.ID == localID || r.ID == rec.ID
	})
	delete(v.snap.Pending, localID)
	delete(v.snap.Pending, rec.ID)
	if v.filter.Matches(rec) {
		v.snap.Records = append(v.snap.Records, rec)
		sortRecords(v.snap.Records)
	}

	v.publishLocked()
}

func (v *RegistryView) setState(state models.ConnectivityState) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.snap.State == state {
		return
	}
	v.snap.State = state

	v.publishLocked()
}

func (v *RegistryView) close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	for id, ch := range v.subs {
		delete(v.subs, id)
		close(ch)
	}
}

func (v *RegistryView) publishLocked() {
	v.snap.Version++
	if v.closed {
		return
	}

	out := cloneSnapshot(v.snap)
	for _, ch := range v.subs {
		select {
		case ch <- out:
		default:
			// drop the unread snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- out:
			default:
			}
		}
	}
}

func cloneSnapshot(s models.ViewSnapshot) models.ViewSnapshot {
	s.Records = slices.Clone(s.Records)
	s.Pending = maps.Clone(s.Pending)
	return s
}

func sortRecords(records []models.Record) {
	slices.SortFunc(records, func(a, b models.Record) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
