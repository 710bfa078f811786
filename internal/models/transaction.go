package models

import "time"

// TransactionType represents the type of a personal transaction.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "Expense"
	TransactionTypeIncome  TransactionType = "Income"
)

// DefaultCategory is assigned when a transaction is logged without one.
const DefaultCategory = "Uncategorized"

// Transaction represents a personal income or expense entry.
// Amounts are stored in minor units (paise/cents) so sums stay exact.
type Transaction struct {
	Base
	UserID        uint            `gorm:"not null;index:idx_txn_user_date" json:"user_id"`
	Amount        int64           `gorm:"type:bigint;not null" json:"amount"`
	Type          TransactionType `gorm:"not null" json:"type"`
	Category      string          `gorm:"index:idx_txn_user_cat" json:"category"`
	Date          time.Time       `gorm:"not null;index:idx_txn_user_date" json:"date"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tags          string          `json:"tags,omitempty"`
}
