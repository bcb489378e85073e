package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/sharedstate/internal/platform/timeouts"
	"github.com/louisbranch/sharedstate/internal/services/state/protocol"
)

type frameWriter interface {
	SetWriteDeadline(t time.Time) error
}

// wsPeer serializes frame writes to one connection and is the connection's
// protocol.Watcher.
type wsPeer struct {
	id       string
	mu       sync.Mutex
	encoder  *json.Encoder
	deadline frameWriter
}

func newWSPeer(id string, encoder *json.Encoder, deadline frameWriter) *wsPeer {
	return &wsPeer{id: id, encoder: encoder, deadline: deadline}
}

func (p *wsPeer) ID() string { return p.id }

// Notify implements protocol.Watcher.
func (p *wsPeer) Notify(_ context.Context, n protocol.Notification) error {
	payload, err := json.Marshal(statePayload{Room: n.Room, Value: n.Value, Version: n.Version})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return p.writeFrame(wsFrame{Type: frameNotify, Payload: payload})
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deadline != nil {
		_ = p.deadline.SetWriteDeadline(time.Now().Add(timeouts.WSWrite))
	}
	return p.encoder.Encode(frame)
}

// wsSession tracks the rooms a connection joined. The most recent join is the
// room used by requests that omit one.
type wsSession struct {
	peer *wsPeer

	mu      sync.Mutex
	rooms   map[string]struct{}
	current string
}

func newWSSession(peer *wsPeer) *wsSession {
	return &wsSession{peer: peer, rooms: make(map[string]struct{})}
}

func (s *wsSession) join(room string) {
	s.mu.Lock()
	s.rooms[room] = struct{}{}
	s.current = room
	s.mu.Unlock()
}

func (s *wsSession) leave(room string) {
	s.mu.Lock()
	delete(s.rooms, room)
	if s.current == room {
		s.current = ""
	}
	s.mu.Unlock()
}

func (s *wsSession) resolve(room string) string {
	if room != "" {
		return room
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *wsSession) joined() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]string, 0, len(s.rooms))
	for room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
