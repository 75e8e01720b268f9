package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationErrorNamesFields(t *testing.T) {
	err := NewValidation("successes", "journal")

	msg := err.Error()
	for _, field := range []string{"successes", "journal"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected error message to name field %q, got %q", field, msg)
		}
	}
}

func TestIsValidation(t *testing.T) {
	err := fmt.Errorf("create habit: %w", NewValidation("name"))
	if !IsValidation(err) {
		t.Error("expected wrapped ValidationError to be detected")
	}

	if IsValidation(ErrNotFound) {
		t.Error("ErrNotFound should not be a validation error")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := &StorageError{Op: "write", Key: "habits", Err: cause}

	if !stderrors.Is(err, cause) {
		t.Error("expected StorageError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "habits") {
		t.Errorf("expected key in message, got %q", err.Error())
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{Status: 503}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty string", got)
	}
	if got := Format(stderrors.New("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q, want %q", got, "Error: boom")
	}
}
