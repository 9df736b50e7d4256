// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-registry-keeper/internal/app"
)

// Request errors answered with 400 before the service layer is called.
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New(app.MsgInvalidJSON)

	// ErrInvalidRecordID is returned when the {id} path segment is not an
	// integer.
	ErrInvalidRecordID = errors.New(app.MsgInvalidRecordID)
)
