package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/momentum-app/momentum/internal/logger"
)

var (
	// ErrNotFound is returned when an operation references an id absent from a collection
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is returned when a remote operation is attempted with no user id available
	ErrUnauthenticated = errors.New("not logged in")
)

// ValidationError reports required fields that were empty or enum values
// outside their allowed set. It is always returned before any I/O happens.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("invalid or missing fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidation builds a ValidationError for the given field names.
func NewValidation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an I/O fault from the local durable store. A missing
// key is never a StorageError.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// TransportError wraps a failed remote call: either a network fault
// (Status == 0) or a non-2xx response.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote call failed: status %d", e.Status)
	}
	return fmt.Sprintf("remote call failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
