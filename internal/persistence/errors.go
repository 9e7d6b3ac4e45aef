package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique column value already exists.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConflict is returned when a reservation insert would overlap an
	// existing reservation for the same room and date. The check runs
	// inside the insert transaction, making the store the authoritative
	// serialization point for concurrent writers.
	ErrConflict = errors.New("persistence: reservation conflict")
)
