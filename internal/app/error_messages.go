// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// registry server handlers.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. Keeping them in one place keeps the wording of the API
// consistent.
package app

import "net/http"

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidRecordID is returned when the {id} path segment is not an
	// integer.
	MsgInvalidRecordID = "record id must be an integer"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgRegistryUnavailable is returned when the database is temporarily
	// unreachable. Clients treat the answer as a connectivity failure and
	// fall back to their local replica.
	MsgRegistryUnavailable = "registry temporarily unavailable"
)

// MessageForStatus returns the body sent for a server-side failure status.
func MessageForStatus(status int) string {
	if status == http.StatusServiceUnavailable {
		return MsgRegistryUnavailable
	}
	return MsgInternalServerError
}
