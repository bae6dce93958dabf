package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned before any I/O when the request is unusable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal marks an unexpected fault caught at the resolve boundary.
	ErrInternal = errors.New("internal fault")
)

// StorageError is an unexpected file-system fault. Missing and corrupt files
// are not storage errors.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
