// Package storage defines the error sentinels shared by storage
// backends and the layers above them.
package storage

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else; callers must not be able to tell the difference.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when saving a user whose email is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
)
