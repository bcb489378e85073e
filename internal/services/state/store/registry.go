// Package store keeps one versioned JSON value per room and applies
// compare-and-swap updates to it.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultMaxValueBytes caps a stored value unless WithMaxValueBytes says
// otherwise.
const DefaultMaxValueBytes = 64 << 10

// Option configures a Registry.
type Option func(*Registry)

// WithGenerator replaces the version generator.
func WithGenerator(gen Generator) Option {
	return func(r *Registry) {
		if gen != nil {
			r.gen = gen
		}
	}
}

// WithMaxValueBytes sets the largest accepted value encoding. Zero keeps
// DefaultMaxValueBytes; a negative value removes the limit.
func WithMaxValueBytes(n int) Option {
	return func(r *Registry) {
		if n == 0 {
			n = DefaultMaxValueBytes
		}
		r.maxValueBytes = n
	}
}

// Registry maps rooms to their cells. Cells are created on first use and
// dropped by Cleanup. Operations on different rooms never contend.
type Registry struct {
	cells         *xsync.MapOf[string, *cell]
	gen           Generator
	maxValueBytes int
}

// NewRegistry builds an empty registry. The default generator is
// UUIDGenerator.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		cells:         xsync.NewMapOf[string, *cell](),
		gen:           UUIDGenerator(),
		maxValueBytes: DefaultMaxValueBytes,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) cell(room string) *cell {
	c, _ := r.cells.LoadOrCompute(room, func() *cell { return &cell{} })
	return c
}

// Get returns a copy of the room's current value and version. An unknown room
// reads as null/null.
func (r *Registry) Get(room string) Snapshot {
	for {
		if snap, ok := r.cell(room).read(); ok {
			return snap
		}
	}
}

// Update stores value when expected matches the room's current version and
// returns the new snapshot. A mismatch returns an error wrapping
// ErrOutdatedVersion and leaves the room unchanged.
func (r *Registry) Update(room string, expected Version, value json.RawMessage) (Snapshot, error) {
	if err := r.validate(value); err != nil {
		return Snapshot{}, err
	}
	for {
		snap, live, err := r.cell(room).write(r.gen, expected, value)
		if !live {
			continue
		}
		return snap, err
	}
}

// Cleanup drops the room's state. Unknown rooms are ignored.
func (r *Registry) Cleanup(room string) {
	if c, ok := r.cells.LoadAndDelete(room); ok {
		c.dispose()
	}
}

// MaxValueBytes reports the value size limit; zero or less means unlimited.
func (r *Registry) MaxValueBytes() int {
	return r.maxValueBytes
}

// Rooms reports how many rooms currently hold a cell.
func (r *Registry) Rooms() int {
	return r.cells.Size()
}

func (r *Registry) validate(value json.RawMessage) error {
	if r.maxValueBytes > 0 && len(value) > r.maxValueBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrValueTooLarge, len(value), r.maxValueBytes)
	}
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: value must not be null", ErrInvalidValue)
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("%w: value is not valid JSON", ErrInvalidValue)
	}
	return nil
}
