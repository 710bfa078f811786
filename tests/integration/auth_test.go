package integration

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "Alice", "alice@example.com", "password123")
	if token == "" {
		t.Fatal("expected a token from registration")
	}
	if userID == 0 {
		t.Fatal("expected a user ID from registration")
	}

	// Login with the same credentials.
	loginToken := app.loginUser(t, "alice@example.com", "password123")
	if loginToken == "" {
		t.Fatal("expected a token from login")
	}

	// Profile reflects the registered user.
	rec := app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["email"] != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %v", user["email"])
	}
	if user["name"] != "Alice" {
		t.Errorf("expected name Alice, got %v", user["name"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "Bob", "bob@example.com", "password123")

	rec := app.request("POST", "/api/v1/auth/login", `{"email":"bob@example.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "First", "dup@example.com", "password123")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"name":"Second","email":"dup@example.com","password":"password456"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", errObj["code"])
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/profile", "", "not-a-real-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a garbage token, got %d", rec.Code)
	}
}

func TestChangePassword(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Carol", "carol@example.com", "password123")

	rec := app.request("PUT", "/api/v1/profile/password",
		`{"current_password":"password123","new_password":"newpassword456"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("change password failed: %d %s", rec.Code, rec.Body.String())
	}

	// Old credential stops working, new one works.
	rec = app.request("POST", "/api/v1/auth/login", `{"email":"carol@example.com","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected, got %d", rec.Code)
	}
	app.loginUser(t, "carol@example.com", "newpassword456")
}

func TestUserDirectory(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Alice", "alice@example.com", "password123")
	app.registerUser(t, "Bob", "bob@example.com", "password123")

	rec := app.request("GET", "/api/v1/users", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("users failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	users := result["users"].([]interface{})
	if len(users) != 2 {
		t.Fatalf("expected 2 users in the directory, got %d", len(users))
	}
	// Directory entries never carry password material.
	first := users[0].(map[string]interface{})
	if _, leaked := first["password"]; leaked {
		t.Error("directory entry exposes a password field")
	}
}
