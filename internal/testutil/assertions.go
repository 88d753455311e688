package testutil

import (
	"errors"
	"testing"

	apperrors "ledgerlens/internal/errors"
)

// AssertNoError fails the test immediately if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError fails the test unless err is an AppError with the
// expected error code.
func AssertAppError(t *testing.T, err error, expected *apperrors.AppError) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", expected.Code)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError %s, got %T: %v", expected.Code, err, err)
	}
	if appErr.Code != expected.Code {
		t.Fatalf("expected error code %s, got %s", expected.Code, appErr.Code)
	}
}
