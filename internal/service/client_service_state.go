package service

import (
	"sync"

	"github.com/MKhiriev/go-registry-keeper/models"
)

// connectivity is the engine's Online/Offline state machine. Every applied
// transition bumps epoch. An Offline mark carries the epoch its call
// observed when it started and is dropped when a transition happened in the
// meantime, so a slow failing call cannot undo a newer recovery.
type connectivity struct {
	mu    sync.RWMutex
	state models.ConnectivityState
	epoch uint64
}

func newConnectivity() *connectivity {
	return &connectivity{state: models.Online}
}

func (c *connectivity) current() (models.ConnectivityState, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state, c.epoch
}

// markOffline reports whether the state changed.
func (c *connectivity) markOffline(observed uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if observed != c.epoch || c.state == models.Offline {
		return false
	}
	c.state = models.Offline
	c.epoch++

	return true
}

// markOnline reports whether the state changed.
func (c *connectivity) markOnline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.Online {
		return false
	}
	c.state = models.Online
	c.epoch++

	return true
}

// markOnlineAt is markOnline for a success observed at epoch observed. It is
// dropped when a transition happened in the meantime.
func (c *connectivity) markOnlineAt(observed uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if observed != c.epoch || c.state == models.Online {
		return false
	}
	c.state = models.Online
	c.epoch++

	return true
}
