package testutil

import (
	"errors"
	"testing"

	apperrors "splitledger/internal/errors"
	"splitledger/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code
// and returns it for further inspection.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertSharesSum checks the conservation invariant on a persisted share set:
// the share amounts must add up to the expense total exactly.
func AssertSharesSum(t *testing.T, shares []models.ExpenseShare, total int64) {
	t.Helper()

	var sum int64
	for _, s := range shares {
		sum += s.Amount
	}
	if sum != total {
		t.Errorf("shares sum to %d, expense total is %d", sum, total)
	}
}
