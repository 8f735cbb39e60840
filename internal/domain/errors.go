package domain

import "errors"

// Error classes surfaced by route computation. Callers wrap these with
// context and classify with errors.Is.
var (
	// Out-of-range coordinates, unknown units, bad parameters. Client error.
	ErrInvalidInput = errors.New("invalid input")

	// The pathfinder failed, timed out or returned nothing usable. Server error.
	ErrPathfinderUnavailable = errors.New("routing unavailable")

	// Unexpected failure while composing a route. Server error.
	ErrComputation = errors.New("route computation failed")
)
