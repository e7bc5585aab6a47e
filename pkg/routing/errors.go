package routing

import "errors"

var (
	// ErrInvalidPattern is returned by AddRoute and New for malformed placeholder patterns.
	ErrInvalidPattern = errors.New("routing: invalid route pattern")

	// ErrInvalidPrefix is returned by AddPrefixRoute for an empty or relative prefix.
	ErrInvalidPrefix = errors.New("routing: invalid route prefix")

	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("routing: nil handler")
)
