package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"splitledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithEmail(t, db, fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount
// (in minor units) on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txnType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		UserID:   userID,
		Amount:   amount,
		Type:     txnType,
		Category: models.DefaultCategory,
		Date:     date,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestGroupExpense creates a group expense with one share per entry in
// shares (user id -> amount). The payer's share is created settled, the rest
// pending. Conservation of the amounts is the caller's responsibility.
func CreateTestGroupExpense(t *testing.T, db *gorm.DB, payerID uint, total int64, shares map[uint]int64) *models.GroupExpense {
	t.Helper()

	expense := &models.GroupExpense{
		Title:   fmt.Sprintf("Test Expense %d", nextID()),
		Amount:  total,
		PayerID: payerID,
		Date:    time.Now(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test group expense: %v", err)
	}

	now := time.Now()
	for userID, amount := range shares {
		share := &models.ExpenseShare{
			GroupExpenseID: expense.ID,
			UserID:         userID,
			Amount:         amount,
		}
		if userID == payerID {
			share.IsSettled = true
			share.SettledAt = &now
		}
		if err := db.Create(share).Error; err != nil {
			t.Fatalf("failed to create test expense share: %v", err)
		}
		expense.Shares = append(expense.Shares, *share)
	}
	return expense
}

// CreateTestBudget creates a budget row for the given key.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, yearMonth, category string, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:    userID,
		YearMonth: yearMonth,
		Category:  category,
		Amount:    amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
