package services

import (
	"testing"

	"splitledger/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Name != "Alice" {
			t.Errorf("expected name Alice, got %s", user.Name)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("First", "dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Second", "dup@example.com", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("duplicate_email_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("First", "case@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Second", "CASE@Example.COM", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("empty_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "x@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("Name", "", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("Name", "x@example.com", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "Alice@EXAMPLE.COM", "password123")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUserWithEmail(t, db, "found@example.com")
		user, err := svc.GetUserByEmail("found@example.com")
		testutil.AssertNoError(t, err)

		if user.ID != created.ID {
			t.Errorf("expected user ID %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("case_insensitive_lookup", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUserWithEmail(t, db, "mixed@example.com")
		user, err := svc.GetUserByEmail("MIXED@example.com")
		testutil.AssertNoError(t, err)

		if user.ID != created.ID {
			t.Errorf("expected user ID %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nonexistent@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Run("correct", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		// Fixture uses "password123" with bcrypt.MinCost
		user := testutil.CreateTestUser(t, db)
		if !svc.VerifyPassword(user, "password123") {
			t.Error("expected password verification to succeed")
		}
	})

	t.Run("incorrect", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)
		if svc.VerifyPassword(user, "wrongpassword") {
			t.Error("expected password verification to fail")
		}
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("rotates_credential", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)
		err := svc.UpdatePassword(user.ID, "newpassword456")
		testutil.AssertNoError(t, err)

		updated, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)

		if !svc.VerifyPassword(updated, "newpassword456") {
			t.Error("expected new password to verify")
		}
		if svc.VerifyPassword(updated, "password123") {
			t.Error("expected old password to stop verifying")
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.UpdatePassword(99999, "newpassword456")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestListUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	db.Exec("INSERT INTO users (name, email, password, created_at, updated_at) VALUES ('Charlie', 'c@example.com', 'x', datetime('now'), datetime('now'))")
	db.Exec("INSERT INTO users (name, email, password, created_at, updated_at) VALUES ('Alice', 'a@example.com', 'x', datetime('now'), datetime('now'))")
	db.Exec("INSERT INTO users (name, email, password, created_at, updated_at) VALUES ('Bob', 'b@example.com', 'x', datetime('now'), datetime('now'))")

	users, err := svc.ListUsers()
	testutil.AssertNoError(t, err)

	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	if users[0].Name != "Alice" || users[1].Name != "Bob" || users[2].Name != "Charlie" {
		t.Errorf("expected users ordered by name, got %s, %s, %s", users[0].Name, users[1].Name, users[2].Name)
	}
}

func TestCreateUser_password_is_hashed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("Hasher", "hash@example.com", "mypassword")
	testutil.AssertNoError(t, err)

	// Password should be bcrypt hash, not plaintext
	if user.Password == "mypassword" {
		t.Error("password should be hashed, not stored as plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("mypassword")); err != nil {
		t.Error("password hash should be valid bcrypt")
	}
}
