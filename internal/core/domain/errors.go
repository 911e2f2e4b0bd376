package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnreadableDocument indicates a document source could not be
	// opened or read. Caught at the worker boundary; only the affected
	// document drops out of the batch.
	ErrUnreadableDocument = errors.New("unreadable document")
)
