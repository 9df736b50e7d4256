package models

// Record is the primary registry entity.
//
// Identity follows a sign partition: ids assigned by the remote registry are
// non-negative, ids assigned by the client to records staged while offline
// are strictly negative. The two ranges never overlap, so no handshake is
// needed to avoid collisions.
type Record struct {
	// ID is the record identity. Negative values mark records that exist
	// only in the local replica.
	ID int64 `json:"id"`

	// Name is the human-readable record name. Required by the registry.
	Name string `json:"name"`

	// Kind is a category tag (e.g. "bridge", "tunnel").
	Kind string `json:"kind"`

	// Status is a lifecycle tag (e.g. "planned", "in_service").
	Status string `json:"status"`

	// Year is the construction year; zero when unknown.
	Year int `json:"year"`

	// Location is a free-form location description.
	Location string `json:"location"`
}

// IsLocal reports whether the record carries a client-assigned id, i.e. it
// has not been accepted by the remote registry yet.
func (r Record) IsLocal() bool {
	return r.ID < 0
}

// Component is a named part attached to a parent [Record]. Components form a
// flat set per record and are never staged locally.
type Component struct {
	RecordID int64  `json:"record_id"`
	Name     string `json:"name"`
}

// RecordFilter narrows a registry listing. Empty fields do not filter.
type RecordFilter struct {
	Kind   string `json:"kind,omitempty"`
	Status string `json:"status,omitempty"`
}

// Matches reports whether r passes the filter.
func (f RecordFilter) Matches(r Record) bool {
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// IsEmpty reports whether the filter selects every record.
func (f RecordFilter) IsEmpty() bool {
	return f.Kind == "" && f.Status == ""
}
