// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPServer is returned by [NewServer] when there is no HTTP handler or
// listen address to serve the registry API on.
var errNoHTTPServer = errors.New("registry HTTP server is not configured")
