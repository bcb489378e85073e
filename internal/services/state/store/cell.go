package store

import (
	"fmt"
	"sync"
)

// cell holds one room's value. Every read and write happens under mu and
// copies bytes in and out.
type cell struct {
	mu       sync.Mutex
	snapshot Snapshot
	// disposed is set once the registry dropped this cell; callers holding a
	// stale pointer retry against the live one.
	disposed bool
}

func (c *cell) read() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return Snapshot{}, false
	}
	return c.snapshot.clone(), true
}

func (c *cell) write(gen Generator, expected Version, value []byte) (Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return Snapshot{}, false, nil
	}
	if expected != c.snapshot.Version {
		return Snapshot{}, true, fmt.Errorf("%w: expected %s, current %s", ErrOutdatedVersion, expected, c.snapshot.Version)
	}
	next, err := gen.NextVersion()
	if err != nil {
		return Snapshot{}, true, err
	}
	c.snapshot = Snapshot{Value: cloneValue(value), Version: next}
	return c.snapshot.clone(), true, nil
}

func (c *cell) dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()
}
