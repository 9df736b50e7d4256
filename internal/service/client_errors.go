// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrLocalStore reports that the local replica failed. There is nothing
	// left to fall back to, so it always reaches the caller.
	ErrLocalStore = errors.New("local replica failure")

	// ErrRecordNotSynced is returned for component operations on a record
	// that exists only in the local replica.
	ErrRecordNotSynced = errors.New("record is not synced with the registry yet")

	// ErrServiceClosed is returned by operations started after Close.
	ErrServiceClosed = errors.New("registry service is closed")
)

func localStoreError(err error) error {
	return fmt.Errorf("%w: %w", ErrLocalStore, err)
}
