package server

import (
	"encoding/json"

	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

const (
	frameJoin   = "state.join"
	frameGet    = "state.get"
	frameUpdate = "state.update"
	frameLeave  = "state.leave"

	frameAck    = "state.ack"
	frameError  = "state.error"
	frameNotify = "state.notify"
)

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type wsErrorEnvelope struct {
	Error wsError `json:"error"`
}

type wsError struct {
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type roomPayload struct {
	Room string `json:"room"`
}

type updatePayload struct {
	Room            string          `json:"room"`
	ExpectedVersion store.Version   `json:"expected_version"`
	NewValue        json.RawMessage `json:"new_value"`
}

// statePayload is shared by acks and notifications.
type statePayload struct {
	Room    string          `json:"room"`
	Value   json.RawMessage `json:"value"`
	Version store.Version   `json:"version"`
}

func newStatePayload(room string, snap store.Snapshot) statePayload {
	return statePayload{Room: room, Value: snap.Value, Version: snap.Version}
}
