package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested path or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyInput indicates a source directory or document list with
	// nothing to process.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
