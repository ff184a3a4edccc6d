package store

import "errors"

// Sentinel errors returned by DocumentStore implementations. Services
// translate these into domain errors at their boundary.
var (
	// ErrNotFound is returned by Get and Update for a missing document.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)
