package models

import "time"

// GroupExpense represents a shared expense fronted in full by one payer and
// split into per-participant shares. The expense and its shares are always
// created together in a single transaction.
//
// IsSettled is derived state: it is recomputed inside the same database
// transaction as every share transition and is true exactly when all child
// shares are settled. Callers never set it directly.
type GroupExpense struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"`
	PayerID     uint       `gorm:"not null;index" json:"payer_id"`
	Category    string     `json:"category"`
	Date        time.Time  `gorm:"not null" json:"date"`
	Description string     `json:"description"`
	IsSettled   bool       `gorm:"not null;default:false" json:"is_settled"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`

	Payer  User           `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	Shares []ExpenseShare `gorm:"foreignKey:GroupExpenseID;constraint:OnDelete:CASCADE" json:"shares,omitempty"`
}

// ExpenseShare is one participant's portion of a group expense.
// Settlement is one-way: Pending -> Settled, no reverse transition.
type ExpenseShare struct {
	Base
	GroupExpenseID uint       `gorm:"not null;index" json:"group_expense_id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	Amount         int64      `gorm:"type:bigint;not null" json:"amount"`
	IsSettled      bool       `gorm:"not null;default:false" json:"is_settled"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
}
