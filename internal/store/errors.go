package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable matches any failure of the underlying adapter.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound is returned by Get when no record has the id.
	ErrNotFound = errors.New("appointment not found")

	// ErrMissingID is returned by Upsert for a record without an id.
	ErrMissingID = errors.New("appointment id is required")

	// ErrMalformedCollection is returned by Upsert and Delete when the stored
	// value is not a list of records. Queries read it as empty instead.
	ErrMalformedCollection = errors.New("stored collection is malformed")
)

// StorageError wraps a persistence adapter failure
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorageUnavailable.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
