package protocol

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/louisbranch/sharedstate/internal/platform/logging"
)

// ErrRoomFull reports a join rejected by the per-room watcher cap.
var ErrRoomFull = errors.New("room is full")

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithMaxWatchers caps members per room. Zero or less is unlimited.
func WithMaxWatchers(n int) HubOption {
	return func(h *Hub) { h.maxWatchers = n }
}

// WithHubLogger sets the logger used for failed deliveries.
func WithHubLogger(logger *log.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Hub is the in-process Groups implementation shared by every transport.
type Hub struct {
	rooms       *xsync.MapOf[string, *group]
	maxWatchers int
	logger      *log.Logger
	watchers    prometheus.Gauge
}

type group struct {
	mu      sync.Mutex
	members map[string]Watcher
}

// NewHub builds an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		rooms:    xsync.NewMapOf[string, *group](),
		logger:   logging.Discard(),
		watchers: newWatchersGauge(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Join implements Groups.
func (h *Hub) Join(room string, w Watcher) error {
	if w == nil {
		return errors.New("watcher is required")
	}
	var joinErr error
	added := false
	h.rooms.Compute(room, func(g *group, loaded bool) (*group, bool) {
		if !loaded {
			g = &group{members: make(map[string]Watcher)}
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.members[w.ID()]; ok {
			return g, false
		}
		if h.maxWatchers > 0 && len(g.members) >= h.maxWatchers {
			joinErr = ErrRoomFull
			return g, false
		}
		g.members[w.ID()] = w
		added = true
		return g, false
	})
	if added {
		h.watchers.Inc()
	}
	return joinErr
}

// Leave implements Groups. onEmpty runs inside the same per-room step that
// Join uses, so no watcher can join room until it returns.
func (h *Hub) Leave(room string, w Watcher, onEmpty func()) bool {
	if w == nil {
		return false
	}
	removed, empty := false, false
	h.rooms.Compute(room, func(g *group, loaded bool) (*group, bool) {
		if !loaded {
			return nil, true
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.members[w.ID()]; ok {
			delete(g.members, w.ID())
			removed = true
		}
		if len(g.members) == 0 {
			empty = removed
			if empty && onEmpty != nil {
				onEmpty()
			}
			return g, true
		}
		return g, false
	})
	if removed {
		h.watchers.Dec()
	}
	return empty
}

// Broadcast implements Groups.
func (h *Hub) Broadcast(ctx context.Context, room string, except Watcher, n Notification) int {
	targets := h.members(room, except)
	delivered := 0
	for _, w := range targets {
		if err := w.Notify(ctx, n); err != nil {
			h.logger.Warn("notify failed", "room", room, "watcher", w.ID(), "err", err)
			continue
		}
		delivered++
	}
	return delivered
}

// Collectors returns the hub's metrics for registration.
func (h *Hub) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.watchers}
}

// Members reports how many watchers are in room.
func (h *Hub) Members(room string) int {
	g, ok := h.rooms.Load(room)
	if !ok {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

func (h *Hub) members(room string, except Watcher) []Watcher {
	g, ok := h.rooms.Load(room)
	if !ok {
		return nil
	}
	exceptID := ""
	if except != nil {
		exceptID = except.ID()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Watcher, 0, len(g.members))
	for id, w := range g.members {
		if except != nil && id == exceptID {
			continue
		}
		out = append(out, w)
	}
	return out
}
