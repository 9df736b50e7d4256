package models

// ComponentRequest is the body of POST /api/records/{id}/components.
type ComponentRequest struct {
	Name string `json:"name"`
}

// PingResponse is the body of GET /api/ping.
type PingResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
