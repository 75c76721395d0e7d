package factor

import "errors"

var (
	// ErrEntityNotFound is returned when no document exists for an entity.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrNoStateIndex is returned from Status when no state index was
	// configured.
	ErrNoStateIndex = errors.New("no state index configured")
)
