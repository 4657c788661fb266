package services

import "github.com/pkg/errors"

// ErrNotConfigured is returned by provider constructors when credentials are absent.
var ErrNotConfigured = errors.New("provider credentials not configured")

// InputError is a client-side validation failure; nothing upstream was called.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func invalidInput(msg string) error {
	return &InputError{Message: msg}
}

// StorageError aborts a seed run.
type StorageError struct {
	City string
	Err  error
}

func (e *StorageError) Error() string { return e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Cause() error { return errors.Cause(e.Err) }
