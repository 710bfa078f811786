package services

import (
	"time"

	"splitledger/internal/balance"
	"splitledger/internal/models"
	"splitledger/internal/pagination"
	"splitledger/internal/split"
)

// UserSummary is the directory view of a user (no credential material).
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdatePassword(userID uint, newPassword string) error
	ListUsers() ([]UserSummary, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Category *string
	Type     *models.TransactionType
}

// TransactionServicer defines the contract for personal transaction logic.
type TransactionServicer interface {
	AddTransaction(userID uint, amount int64, txnType models.TransactionType, category string, date time.Time, description, paymentMethod, tags string) (*models.Transaction, error)
	UpdateTransaction(transactionID, userID uint, amount int64, txnType models.TransactionType, category string, date time.Time, description, paymentMethod, tags string) (*models.Transaction, error)
	DeleteTransaction(transactionID, userID uint) error
	ListTransactions(userID uint, from, to time.Time, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	DistinctCategories(userID uint) ([]string, error)
}

// SplitType selects the share computation strategy for a group expense.
type SplitType string

const (
	SplitTypeEqual  SplitType = "equal"
	SplitTypeCustom SplitType = "custom"
)

// SplitSpec describes how a group expense total is divided. For an equal
// split only Participants is read; for a custom split Entries carries the
// explicit per-participant amounts and the payer gets the remainder.
type SplitSpec struct {
	Type         SplitType
	Participants []uint
	Entries      []split.Share
}

// ExpenseRow is one joined expense+share row as listed for a user.
type ExpenseRow struct {
	ExpenseID        uint       `json:"expense_id"`
	Title            string     `json:"title"`
	Amount           int64      `json:"amount"`
	Category         string     `json:"category"`
	Date             time.Time  `json:"date"`
	Description      string     `json:"description"`
	PayerID          uint       `json:"payer_id"`
	PayerName        string     `json:"payer_name"`
	ExpenseSettled   bool       `json:"is_settled"`
	ExpenseSettledAt *time.Time `json:"settled_at,omitempty"`
	ShareID          uint       `json:"share_id"`
	ShareUserID      uint       `json:"share_user_id"`
	ShareAmount      int64      `json:"share_amount"`
	ShareSettled     bool       `json:"share_settled"`
	ShareSettledAt   *time.Time `json:"share_settled_at,omitempty"`
}

// ExpenseServicer defines the contract for the group-expense ledger and
// settlement tracking.
type ExpenseServicer interface {
	CreateGroupExpense(payerID uint, title string, amount int64, category string, date time.Time, description string, spec SplitSpec) (*models.GroupExpense, error)
	ListGroupExpensesForUser(userID uint) ([]ExpenseRow, error)
	SettleShare(shareID, actingUserID uint) error
	GetBalanceSummary(userID uint) (balance.Summary, error)
}

// BudgetServicer defines the contract for monthly budget limits.
type BudgetServicer interface {
	UpsertBudget(userID uint, yearMonth, category string, amount int64) (*models.Budget, error)
	GetBudget(userID uint, yearMonth, category string) (*models.Budget, error)
	GetBudgetsForMonth(userID uint, yearMonth string) ([]models.Budget, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
