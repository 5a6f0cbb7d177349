package simpleblog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotFound indicates a lookup by slug or id found nothing
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates missing or malformed input
	ErrValidation = errors.New("validation failed")

	// ErrObjectNotFound is returned by blob stores when a key does not exist
	ErrObjectNotFound = errors.New("object not found")
)

// ValidationError reports a missing or blank required field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports that an entity of the given kind does not exist
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError represents an error related to storage operations
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
