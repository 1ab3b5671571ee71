package entity

import "errors"

// ErrNotFound covers both "record does not exist" and "record belongs
// to another owner". The two cases must stay indistinguishable to the
// caller so that ownership of foreign records never leaks.
var ErrNotFound = errors.New("note not found")

// StorageError replaces the persistence layer's failure message with a
// generic domain message. The underlying cause stays reachable through
// Unwrap for the delete cascade, which forwards it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
