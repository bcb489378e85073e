package store

import "errors"

var (
	// ErrOutdatedVersion rejects an update whose expected version is not the
	// room's current version.
	ErrOutdatedVersion = errors.New("outdated version")
	// ErrInvalidValue rejects a value that is not well-formed JSON or is null.
	ErrInvalidValue = errors.New("invalid value")
	// ErrValueTooLarge rejects a value larger than the registry limit.
	ErrValueTooLarge = errors.New("value too large")
)
