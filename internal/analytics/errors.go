package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every NotFoundError.
	ErrNotFound = errors.New("not found in graph")

	// ErrNoPath is wrapped by every NoPathError.
	ErrNoPath = errors.New("no path between nodes")
)

// NotFoundError reports a query identifier, or its orbit target, that the
// graph does not contain.
type NotFoundError struct {
	Identifier string
	// OrbitTarget is set when the identifier exists but orbits nothing.
	OrbitTarget bool
}

func (e *NotFoundError) Error() string {
	if e.OrbitTarget {
		return fmt.Sprintf("orbit target of %q: %s", e.Identifier, ErrNotFound)
	}
	return fmt.Sprintf("%q: %s", e.Identifier, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NoPathError reports that the two query nodes are disconnected.
type NoPathError struct {
	From string
	To   string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("%s from %q to %q", ErrNoPath, e.From, e.To)
}

func (e *NoPathError) Unwrap() error {
	return ErrNoPath
}
