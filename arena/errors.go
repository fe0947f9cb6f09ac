package arena

import "errors"

var (
	// ErrExhausted is returned when the arena limit leaves no room for an
	// allocation or a cleanup registration.
	ErrExhausted = errors.New("arena: exhausted")
	// ErrReleased is returned by AddCleanup while the arena is tearing down.
	ErrReleased = errors.New("arena: released")
)
