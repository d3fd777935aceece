package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	plain := New(ErrValidation, "title is required")
	if !strings.Contains(plain.Error(), "VALIDATION_FAILED") {
		t.Errorf("Error() = %q, want code in message", plain.Error())
	}

	cause := stderrors.New("disk full")
	wrapped := Wrap(ErrDatabase, "failed to save entry", cause)
	if !strings.Contains(wrapped.Error(), "disk full") {
		t.Errorf("Error() = %q, want wrapped cause", wrapped.Error())
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Unwrap chain should reach the cause")
	}
}

func TestIs(t *testing.T) {
	err := Newf(ErrEntryNotFound, "entry %s not found", "e1")
	if !Is(err, ErrEntryNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrJournalNotFound) {
		t.Error("Is must not match a different code")
	}
	if Is(stderrors.New("plain"), ErrEntryNotFound) {
		t.Error("Is must not match a non-AppError")
	}
}

func TestIsNotFound(t *testing.T) {
	for _, code := range []ErrorCode{ErrNotFound, ErrJournalNotFound, ErrEntryNotFound, ErrGoalNotFound} {
		if !IsNotFound(New(code, "x")) {
			t.Errorf("IsNotFound should be true for %s", code)
		}
	}
	if IsNotFound(New(ErrValidation, "x")) {
		t.Error("IsNotFound must be false for validation errors")
	}
}
