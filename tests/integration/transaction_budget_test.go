package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionCRUDOverAPI(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Alice", "alice@example.com", "password123")

	// Create.
	rec := app.request("POST", "/api/v1/transactions",
		`{"amount":2500,"type":"Expense","category":"Food","description":"lunch"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
	txnID := int(txn["id"].(float64))

	// Empty category falls back to the default.
	rec = app.request("POST", "/api/v1/transactions", `{"amount":100,"type":"Income"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	defaulted := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if defaulted["category"] != "Uncategorized" {
		t.Errorf("expected default category, got %v", defaulted["category"])
	}

	// List returns both, newest first.
	rec = app.request("GET", "/api/v1/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	listing := parseJSON(t, rec)
	if listing["total_items"].(float64) != 2 {
		t.Errorf("expected 2 transactions, got %v", listing["total_items"])
	}

	// Filter by type.
	rec = app.request("GET", "/api/v1/transactions?type=Income", "", token)
	listing = parseJSON(t, rec)
	if listing["total_items"].(float64) != 1 {
		t.Errorf("expected 1 income, got %v", listing["total_items"])
	}

	// Update.
	path := fmt.Sprintf("/api/v1/transactions/%d", txnID)
	rec = app.request("PUT", path, `{"amount":3000,"type":"Expense","category":"Food"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["amount"].(float64) != 3000 {
		t.Errorf("expected amount 3000, got %v", updated["amount"])
	}

	// Categories endpoint folds in the default.
	rec = app.request("GET", "/api/v1/transactions/categories", "", token)
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %v", categories)
	}

	// Delete.
	rec = app.request("DELETE", path, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions", "", token)
	listing = parseJSON(t, rec)
	if listing["total_items"].(float64) != 1 {
		t.Errorf("expected 1 transaction after delete, got %v", listing["total_items"])
	}
}

func TestTransactionOwnershipOverAPI(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "Owner", "owner@example.com", "password123")
	otherToken, _ := app.registerUser(t, "Other", "other@example.com", "password123")

	rec := app.request("POST", "/api/v1/transactions", `{"amount":500,"type":"Expense"}`, ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
	path := fmt.Sprintf("/api/v1/transactions/%d", int(txn["id"].(float64)))

	rec = app.request("DELETE", path, "", otherToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 deleting someone else's transaction, got %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("PUT", path, `{"amount":1,"type":"Expense"}`, otherToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 updating someone else's transaction, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetUpsertAndReadOverAPI(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Alice", "alice@example.com", "password123")

	// Set an overall budget and a category budget.
	rec := app.request("PUT", "/api/v1/budgets", `{"year_month":"2025-06","amount":100000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("PUT", "/api/v1/budgets", `{"year_month":"2025-06","category":"Food","amount":40000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert failed: %d %s", rec.Code, rec.Body.String())
	}

	// Overwrite the category budget.
	rec = app.request("PUT", "/api/v1/budgets", `{"year_month":"2025-06","category":"Food","amount":45000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["amount"].(float64) != 45000 {
		t.Errorf("expected overwritten amount 45000, got %v", budget["amount"])
	}

	// Month listing returns both rows.
	rec = app.request("GET", "/api/v1/budgets?year_month=2025-06", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}
	budgets := parseJSON(t, rec)["budgets"].([]interface{})
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}

	// Single lookup by exact key.
	rec = app.request("GET", "/api/v1/budgets?year_month=2025-06&category=Food", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}
	budget = parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["amount"].(float64) != 45000 {
		t.Errorf("expected amount 45000, got %v", budget["amount"])
	}

	// Invalid month format is rejected.
	rec = app.request("PUT", "/api/v1/budgets", `{"year_month":"2025-13","amount":100}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid year_month, got %d %s", rec.Code, rec.Body.String())
	}
}
