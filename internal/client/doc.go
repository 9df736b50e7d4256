// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client runs the registry client process: an initial registry
// load, the background refresh worker and the terminal UI, sharing one
// offline-first registry service.
package client
