package models

// ViewSnapshot is the published "current list" of the registry.
type ViewSnapshot struct {
	// Version increases with every publication.
	Version uint64

	Origin  Origin
	State   ConnectivityState
	Records []Record

	// Pending is the set of record ids with unsynced local state.
	Pending map[int64]bool
}

// IsPending reports whether the record with id has unsynced local state.
func (s ViewSnapshot) IsPending(id int64) bool {
	return s.Pending[id]
}
