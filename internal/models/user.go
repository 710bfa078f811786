package models

// User represents a registered account. Users are never deleted by the
// application itself, but the schema cascades ownership if they ever are.
type User struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Transactions  []Transaction  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	GroupExpenses []GroupExpense `gorm:"foreignKey:PayerID;constraint:OnDelete:CASCADE" json:"group_expenses,omitempty"`
	Shares        []ExpenseShare `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"shares,omitempty"`
	Budgets       []Budget       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"budgets,omitempty"`
}
