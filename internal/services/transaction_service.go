package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "splitledger/internal/errors"
	"splitledger/internal/models"
	"splitledger/internal/pagination"
)

// transactionService handles personal transaction business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

func validateTransactionInput(amount int64, txnType models.TransactionType) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if txnType != models.TransactionTypeExpense && txnType != models.TransactionTypeIncome {
		return apperrors.ErrInvalidTransactionType
	}
	return nil
}

// AddTransaction records a new income or expense entry for a user.
func (s *transactionService) AddTransaction(
	userID uint,
	amount int64,
	txnType models.TransactionType,
	category string,
	date time.Time,
	description, paymentMethod, tags string,
) (*models.Transaction, error) {
	if err := validateTransactionInput(amount, txnType); err != nil {
		return nil, err
	}
	if category == "" {
		category = models.DefaultCategory
	}
	if date.IsZero() {
		date = time.Now()
	}

	txn := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Type:          txnType,
		Category:      category,
		Date:          date,
		Description:   description,
		PaymentMethod: paymentMethod,
		Tags:          tags,
	}
	if err := s.db.Create(txn).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txn, nil
}

// getOwnedTransaction loads a transaction and enforces ownership explicitly:
// a missing record is TRANSACTION_NOT_FOUND, someone else's record is
// FORBIDDEN. Mutations never silently affect zero rows.
func (s *transactionService) getOwnedTransaction(transactionID, userID uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.First(&txn, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &txn, nil
}

// UpdateTransaction replaces the mutable fields of a transaction owned by userID.
func (s *transactionService) UpdateTransaction(
	transactionID, userID uint,
	amount int64,
	txnType models.TransactionType,
	category string,
	date time.Time,
	description, paymentMethod, tags string,
) (*models.Transaction, error) {
	if err := validateTransactionInput(amount, txnType); err != nil {
		return nil, err
	}

	txn, err := s.getOwnedTransaction(transactionID, userID)
	if err != nil {
		return nil, err
	}

	if category == "" {
		category = models.DefaultCategory
	}
	updates := map[string]interface{}{
		"amount":         amount,
		"type":           txnType,
		"category":       category,
		"date":           date,
		"description":    description,
		"payment_method": paymentMethod,
		"tags":           tags,
	}
	if err := s.db.Model(txn).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txn, nil
}

// DeleteTransaction removes a transaction owned by userID.
func (s *transactionService) DeleteTransaction(transactionID, userID uint) error {
	txn, err := s.getOwnedTransaction(transactionID, userID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(txn).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListTransactions returns the user's transactions with date inclusive in
// [from, to], newest first; same-day entries tie-break on id descending so
// the order is stable.
func (s *transactionService) ListTransactions(
	userID uint,
	from, to time.Time,
	filter TransactionFilter,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DistinctCategories returns the user's category names, sorted, with empty
// categories folded into the default.
func (s *transactionService) DistinctCategories(userID uint) ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("1").
		Pluck("COALESCE(NULLIF(category, ''), 'Uncategorized')", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
