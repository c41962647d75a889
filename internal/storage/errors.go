package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key has never been set (or was
	// removed).
	ErrNotFound = errors.New("key not found")

	// ErrExpired is returned by Get when the key's expiry has passed; the
	// key is lazily removed before this error is returned.
	ErrExpired = errors.New("key expired")

	// ErrInvalidValue is returned by Restore when a value cannot be used to
	// populate the store (e.g. a nil raw payload).
	ErrInvalidValue = errors.New("invalid stored value")
)
