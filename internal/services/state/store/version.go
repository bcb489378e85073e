package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Version is an opaque token identifying one accepted write to a room.
// Tokens are compared for equality only; they carry no ordering.
type Version string

// NoVersion is the absent token held by an uninitialized room. It encodes as
// JSON null.
const NoVersion Version = ""

// IsZero reports whether v is the absent token.
func (v Version) IsZero() bool { return v == NoVersion }

func (v Version) String() string {
	if v == NoVersion {
		return "null"
	}
	return string(v)
}

// MarshalJSON encodes NoVersion as null and any other token as a string.
func (v Version) MarshalJSON() ([]byte, error) {
	if v == NoVersion {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

// UnmarshalJSON accepts null or a non-empty string.
func (v *Version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = NoVersion
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("version must be a string or null: %w", err)
	}
	if s == "" {
		return fmt.Errorf("version must not be empty; use null for the absent version")
	}
	*v = Version(s)
	return nil
}

// Snapshot is the value and version of a room at one instant.
type Snapshot struct {
	// Value is the JSON encoding of the stored value; nil means null.
	Value   json.RawMessage `json:"value"`
	Version Version         `json:"version"`
}

// IsEmpty reports whether the snapshot describes an uninitialized room.
func (s Snapshot) IsEmpty() bool {
	return s.Value == nil && s.Version == NoVersion
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Value: cloneValue(s.Value), Version: s.Version}
}

func cloneValue(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	return bytes.Clone(v)
}
