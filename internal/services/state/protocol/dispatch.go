package protocol

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// roomLocks serializes, per room, reading or committing state together with
// handing the result to watchers, so every watcher sees a room's versions in
// commit order. Entries live only while someone holds or waits on them.
type roomLocks struct {
	locks *xsync.MapOf[string, *roomLock]
}

type roomLock struct {
	mu sync.Mutex
	// refs is only read and written inside Compute for the room's key.
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: xsync.NewMapOf[string, *roomLock]()}
}

// lock blocks until the caller holds room and returns the release func.
func (l *roomLocks) lock(room string) func() {
	var held *roomLock
	l.locks.Compute(room, func(rl *roomLock, loaded bool) (*roomLock, bool) {
		if !loaded {
			rl = &roomLock{}
		}
		rl.refs++
		held = rl
		return rl, false
	})
	held.mu.Lock()
	return func() {
		held.mu.Unlock()
		l.locks.Compute(room, func(rl *roomLock, loaded bool) (*roomLock, bool) {
			rl.refs--
			return rl, rl.refs == 0
		})
	}
}

func (l *roomLocks) size() int {
	return l.locks.Size()
}
