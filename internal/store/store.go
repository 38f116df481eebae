package store

import "errors"

var (
	// ErrNoOwner is returned when an operation is attempted without an
	// authenticated owner. Callers must check auth before writing.
	ErrNoOwner = errors.New("store: no owner identity")

	ErrNotFound = errors.New("store: record not found")
)
