package services

import (
	"testing"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)

	req := RegisterRequest{
		Email:       "owner@acme.test",
		Password:    "password123",
		FirstName:   "Alex",
		LastName:    "Tan",
		CompanyName: "Acme Trading Pte Ltd",
	}

	t.Run("creates_user", func(t *testing.T) {
		user, err := svc.Register(req)
		testutil.AssertNoError(t, err)
		if user.ID == 0 {
			t.Fatal("expected assigned ID")
		}
		if user.Password == "password123" {
			t.Fatal("password stored in plaintext")
		}
	})

	t.Run("rejects_duplicate_email", func(t *testing.T) {
		_, err := svc.Register(req)
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateEmail)
	})
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	t.Run("accepts_valid_credentials", func(t *testing.T) {
		got, err := svc.AttemptLogin(user.Email, "password123")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Fatalf("expected user %d, got %d", user.ID, got.ID)
		}
		if got.LastLoginAt == nil {
			t.Fatal("expected last login timestamp")
		}
	})

	t.Run("rejects_wrong_password", func(t *testing.T) {
		_, err := svc.AttemptLogin(user.Email, "wrong-password")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("rejects_unknown_email", func(t *testing.T) {
		_, err := svc.AttemptLogin("ghost@acme.test", "password123")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("locks_after_repeated_failures", func(t *testing.T) {
		locked := testutil.CreateTestUser(t, db)
		for i := 0; i < maxFailedLogins; i++ {
			_, err := svc.AttemptLogin(locked.Email, "wrong-password")
			testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)
		}

		_, err := svc.AttemptLogin(locked.Email, "password123")
		testutil.AssertAppError(t, err, apperrors.ErrAccountLocked)
	})

	t.Run("success_resets_failure_count", func(t *testing.T) {
		fresh := testutil.CreateTestUser(t, db)
		_, err := svc.AttemptLogin(fresh.Email, "wrong-password")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)

		got, err := svc.AttemptLogin(fresh.Email, "password123")
		testutil.AssertNoError(t, err)
		if got.FailedLoginAttempts != 0 {
			t.Fatalf("expected reset failure count, got %d", got.FailedLoginAttempts)
		}
	})
}

func TestRefreshTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	t.Run("round_trips_stored_hash", func(t *testing.T) {
		testutil.AssertNoError(t, svc.StoreRefreshToken(user.ID, "hash-a"))

		got, err := svc.ValidateRefreshToken(user.ID, "hash-a")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Fatalf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("rejects_mismatched_hash", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(user.ID, "hash-b")
		testutil.AssertAppError(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("clear_invalidates_session", func(t *testing.T) {
		testutil.AssertNoError(t, svc.ClearRefreshToken(user.ID))
		_, err := svc.ValidateRefreshToken(user.ID, "hash-a")
		testutil.AssertAppError(t, err, apperrors.ErrUnauthorized)
	})
}
