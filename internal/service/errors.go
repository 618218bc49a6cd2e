package service

import (
	"errors"
	"fmt"

	"adarchive/internal/storage"
)

var (
	// ErrNotFound is returned when a requested asset is absent.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// mapStorageError translates storage sentinels into the service taxonomy.
// GroupError passes through unchanged; handlers map it to a client error.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrDuplicatePath):
		return &ValidationError{Field: "sourceFilePath", Message: "a file with this vault path already exists"}
	case errors.Is(err, storage.ErrInvalidRecord):
		return &ValidationError{Field: "updates", Message: err.Error()}
	}
	var groupErr *storage.GroupError
	if errors.As(err, &groupErr) {
		return err
	}
	return WrapError(err, "storage operation failed")
}
