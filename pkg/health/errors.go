package health

import "errors"

var (
	// ErrCheckTimeout is reported when a check does not return before the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanicked is reported when a check panics.
	ErrCheckPanicked = errors.New("health: check panicked")
)
