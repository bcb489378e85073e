package store

import (
	"fmt"

	"github.com/louisbranch/sharedstate/internal/platform/id"
)

// Generator produces the version token for each accepted write.
type Generator interface {
	NextVersion() (Version, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() (Version, error)

// NextVersion implements Generator.
func (fn GeneratorFunc) NextVersion() (Version, error) { return fn() }

// UUIDGenerator returns fresh random tokens backed by id.NewID.
func UUIDGenerator() Generator {
	return GeneratorFunc(func() (Version, error) {
		token, err := id.NewID()
		if err != nil {
			return NoVersion, fmt.Errorf("generate version: %w", err)
		}
		return Version(token), nil
	})
}

// NullGenerator returns NoVersion for every write. Stored versions then stay
// null and every update is accepted.
func NullGenerator() Generator {
	return GeneratorFunc(func() (Version, error) { return NoVersion, nil })
}
