package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"stockfolio/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("creates_user_with_hashed_credential", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.Register("alice", "hunter22secret")
		testutil.AssertNoError(t, err)
		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.PasswordHash == "hunter22secret" {
			t.Fatal("credential must not be stored in plaintext")
		}
		testutil.AssertNoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22secret")))
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register("bob", "hunter22secret")
		testutil.AssertNoError(t, err)
		_, err = svc.Register("bob", "otherpassword")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("empty_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register("   ", "hunter22secret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register("carol", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if user.Username != created.Username {
			t.Errorf("expected username %q, got %q", created.Username, user.Username)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID(99999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
