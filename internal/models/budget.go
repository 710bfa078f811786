package models

// Budget is a monthly spending limit, either overall (empty category) or for
// a single category. One row per (user, year-month, category); setting the
// same key again overwrites the amount.
type Budget struct {
	Base
	UserID    uint   `gorm:"not null;uniqueIndex:idx_budget_key" json:"user_id"`
	YearMonth string `gorm:"not null;size:7;uniqueIndex:idx_budget_key" json:"year_month"` // YYYY-MM
	Category  string `gorm:"uniqueIndex:idx_budget_key" json:"category"`                   // empty = overall budget
	Amount    int64  `gorm:"type:bigint;not null" json:"amount"`
}
