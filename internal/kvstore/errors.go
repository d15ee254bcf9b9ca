package kvstore

import "errors"

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrKeyRequired is returned when an empty key is used.
	ErrKeyRequired = errors.New("kvstore: key required")
)
