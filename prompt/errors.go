package prompt

import (
	"fmt"

	"prompt-collector/storage"
)

// ValidationError reports malformed input: an empty or oversized name, a bad
// prompt shape, empty edit text.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DuplicateError reports a name or buffer-text collision. It unwraps to a
// ValidationError, so callers that only care about rejected input can match that.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

func (e *DuplicateError) Unwrap() error {
	return &ValidationError{Message: e.Message}
}

// NotFoundError reports an index or name that refers to nothing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// StorageError reports a failed read or write of the underlying store.
type StorageError = storage.Error

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func duplicate(format string, args ...any) error {
	return &DuplicateError{Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
