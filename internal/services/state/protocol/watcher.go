package protocol

import (
	"context"

	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

// Notification is pushed to watchers when a room's state is announced.
type Notification struct {
	Room string `json:"room"`
	store.Snapshot
}

// Watcher is one connected participant that can receive notifications.
// Notify runs while the room's updates are held back, so it must not call the
// Handler for the same room; transports bound its duration with their own
// write deadlines or queues.
type Watcher interface {
	ID() string
	Notify(ctx context.Context, n Notification) error
}

// Groups tracks room membership and fans notifications out to members.
type Groups interface {
	// Join adds w to room. Joining twice is a no-op.
	Join(room string, w Watcher) error
	// Leave removes w from room and reports whether the room has no members
	// left as a result. When it does, onEmpty runs before any later Join of
	// room can complete.
	Leave(room string, w Watcher, onEmpty func()) bool
	// Broadcast delivers n to every member of room other than except and
	// returns how many deliveries succeeded.
	Broadcast(ctx context.Context, room string, except Watcher, n Notification) int
}
