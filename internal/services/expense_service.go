package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"splitledger/internal/balance"
	apperrors "splitledger/internal/errors"
	"splitledger/internal/models"
	"splitledger/internal/split"
)

// expenseService handles the group-expense ledger and settlement tracking.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// computeShares runs the split engine for the given spec.
func computeShares(amount int64, payerID uint, spec SplitSpec) ([]split.Share, error) {
	switch spec.Type {
	case SplitTypeEqual:
		return split.Equal(amount, payerID, spec.Participants)
	case SplitTypeCustom:
		return split.Custom(amount, payerID, spec.Entries)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "split type must be 'equal' or 'custom'")
	}
}

// CreateGroupExpense computes the share set for the given split spec,
// validates conservation, and persists the expense with all its shares as
// one atomic unit. If any insert fails nothing is persisted.
//
// The payer's own share is created already settled: the self-owed portion
// carries no debt, and a fresh expense is pending only on the shares of the
// other participants.
func (s *expenseService) CreateGroupExpense(
	payerID uint,
	title string,
	amount int64,
	category string,
	date time.Time,
	description string,
	spec SplitSpec,
) (*models.GroupExpense, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now()
	}

	shares, err := computeShares(amount, payerID, spec)
	if err != nil {
		return nil, err
	}
	// Conservation invariant, checked once more right before persistence.
	if err := split.Validate(amount, shares); err != nil {
		return nil, err
	}

	expense := &models.GroupExpense{
		Title:       title,
		Amount:      amount,
		PayerID:     payerID,
		Category:    category,
		Date:        date,
		Description: description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, len(shares))
		for i, sh := range shares {
			ids[i] = sh.UserID
		}
		var known int64
		if err := tx.Model(&models.User{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if known != int64(len(ids)) {
			return apperrors.WithMessage(apperrors.ErrUserNotFound, "one or more participants are not registered users")
		}

		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		now := time.Now()
		for _, sh := range shares {
			record := &models.ExpenseShare{
				GroupExpenseID: expense.ID,
				UserID:         sh.UserID,
				Amount:         sh.Amount,
			}
			if sh.UserID == payerID {
				record.IsSettled = true
				record.SettledAt = &now
			}
			if err := tx.Create(record).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			expense.Shares = append(expense.Shares, *record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListGroupExpensesForUser returns the joined expense+share rows the user is
// involved in, as debtor or payer, newest first.
func (s *expenseService) ListGroupExpensesForUser(userID uint) ([]ExpenseRow, error) {
	var rows []ExpenseRow
	err := s.db.Table("group_expenses AS ge").
		Select(`ge.id AS expense_id,
			ge.title,
			ge.amount,
			ge.category,
			ge.date,
			ge.description,
			ge.payer_id,
			ge.is_settled AS expense_settled,
			ge.settled_at AS expense_settled_at,
			u.name AS payer_name,
			ges.id AS share_id,
			ges.user_id AS share_user_id,
			ges.amount AS share_amount,
			ges.is_settled AS share_settled,
			ges.settled_at AS share_settled_at`).
		Joins("JOIN users u ON ge.payer_id = u.id").
		Joins("JOIN group_expense_shares ges ON ge.id = ges.group_expense_id").
		Where("ges.user_id = ? OR ge.payer_id = ?", userID, userID).
		Order("ge.date DESC, ge.id DESC, ges.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// SettleShare marks a share as settled on behalf of actingUserID and
// re-derives the parent expense's settlement state. The share transition,
// the pending-sibling count, and the conditional parent flip all run inside
// one database transaction, so no partial state survives a crash between
// them. Settling an already-settled share leaves the share untouched but
// still re-derives the parent, so derived state converges even after a
// missed flip.
func (s *expenseService) SettleShare(shareID, actingUserID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var share models.ExpenseShare
		if err := tx.First(&share, shareID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrShareNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if share.UserID != actingUserID {
			return apperrors.ErrForbidden
		}

		// Lock the parent row so settlements on the same expense serialize.
		// At read committed, two transactions settling the last two pending
		// shares would each count the other's share as still pending and
		// neither would flip the parent. The sqlite driver drops the lock
		// clause; its single-writer model serializes on its own.
		var expense models.GroupExpense
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&expense, share.GroupExpenseID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		now := time.Now()
		if !share.IsSettled {
			if err := tx.Model(&share).
				Updates(map[string]interface{}{"is_settled": true, "settled_at": &now}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if expense.IsSettled {
			return nil
		}

		var pending int64
		if err := tx.Model(&models.ExpenseShare{}).
			Where("group_expense_id = ? AND is_settled = ?", share.GroupExpenseID, false).
			Count(&pending).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if pending > 0 {
			return nil
		}

		if err := tx.Model(&expense).
			Updates(map[string]interface{}{"is_settled": true, "settled_at": &now}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetBalanceSummary aggregates the user's position across their group
// expenses. Pure computation over the listing rows.
func (s *expenseService) GetBalanceSummary(userID uint) (balance.Summary, error) {
	rows, err := s.ListGroupExpensesForUser(userID)
	if err != nil {
		return balance.Summary{}, err
	}

	brs := make([]balance.Row, len(rows))
	for i, r := range rows {
		brs[i] = balance.Row{
			ExpenseID:      r.ExpenseID,
			PayerID:        r.PayerID,
			ShareUserID:    r.ShareUserID,
			ExpenseAmount:  r.Amount,
			ShareAmount:    r.ShareAmount,
			ExpenseSettled: r.ExpenseSettled,
		}
	}
	return balance.Summarize(userID, brs), nil
}
