package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "splitledger/internal/errors"
	"splitledger/internal/models"
)

var yearMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// budgetService handles monthly budget limits.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// UpsertBudget inserts or overwrites the budget amount for the unique
// (user, year-month, category) key. An empty category is the overall budget.
func (s *budgetService) UpsertBudget(userID uint, yearMonth, category string, amount int64) (*models.Budget, error) {
	if !yearMonthRe.MatchString(yearMonth) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year_month must be in YYYY-MM format")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	budget := &models.Budget{
		UserID:    userID,
		YearMonth: yearMonth,
		Category:  category,
		Amount:    amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year_month"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so the caller sees the surviving row, not the insert attempt.
	return s.GetBudget(userID, yearMonth, category)
}

// GetBudget returns the budget for the exact (user, year-month, category) key.
func (s *budgetService) GetBudget(userID uint, yearMonth, category string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where("user_id = ? AND year_month = ? AND category = ?", userID, yearMonth, category).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetBudgetsForMonth lists every budget a user has set for a month, the
// overall one first.
func (s *budgetService) GetBudgetsForMonth(userID uint, yearMonth string) ([]models.Budget, error) {
	if !yearMonthRe.MatchString(yearMonth) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year_month must be in YYYY-MM format")
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND year_month = ?", userID, yearMonth).
		Order("category").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}
