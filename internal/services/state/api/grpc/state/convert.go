package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	statev1 "github.com/louisbranch/sharedstate/api/gen/go/state/v1"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

// RoomState is a room's state decoded from the wire. It encodes to JSON as
// {"room", "value", "version"}.
type RoomState struct {
	Room string `json:"room"`
	store.Snapshot
}

// RoomStateFromProto decodes a wire state. A missing message reads as an
// empty room.
func RoomStateFromProto(in *statev1.RoomState) (RoomState, error) {
	value, err := valueFromProto(in.GetValue())
	if err != nil {
		return RoomState{}, err
	}
	return RoomState{
		Room:     in.GetRoom(),
		Snapshot: store.Snapshot{Value: value, Version: store.Version(in.GetVersion())},
	}, nil
}

func roomStateToProto(room string, snap store.Snapshot) (*statev1.RoomState, error) {
	value, err := valueToProto(snap.Value)
	if err != nil {
		return nil, err
	}
	return &statev1.RoomState{Room: room, Value: value, Version: string(snap.Version)}, nil
}

// valueToProto converts stored JSON into a structpb value. The null value is
// left unset.
func valueToProto(value json.RawMessage) (*structpb.Value, error) {
	if value == nil {
		return nil, nil
	}
	out := &structpb.Value{}
	if err := protojson.Unmarshal(value, out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return out, nil
}

// valueFromProto renders v as compact JSON. Unset and explicit null values
// both read as the null value.
func valueFromProto(v *structpb.Value) (json.RawMessage, error) {
	if v == nil || v.GetKind() == nil {
		return nil, nil
	}
	if _, ok := v.GetKind().(*structpb.Value_NullValue); ok {
		return nil, nil
	}
	raw, err := protojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("compact value: %w", err)
	}
	return buf.Bytes(), nil
}
