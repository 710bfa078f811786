package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "splitledger/internal/errors"
	"splitledger/internal/services"
	"splitledger/internal/split"
)

// ExpenseHandler handles the group-expense ledger endpoints.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// ShareEntry is one explicit participant amount in a custom split.
type ShareEntry struct {
	UserID uint  `json:"user_id" binding:"required"`
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// CreateExpenseRequest is the payload for recording a group expense.
// For an equal split, participants lists the non-payer user IDs; for a
// custom split, entries carries the explicit amounts and the payer keeps
// the remainder.
type CreateExpenseRequest struct {
	Title        string       `json:"title" binding:"required,min=1,max=200"`
	Amount       int64        `json:"amount" binding:"required,gt=0"`
	Category     string       `json:"category" binding:"max=100"`
	Date         *time.Time   `json:"date"`
	Description  string       `json:"description" binding:"max=500"`
	SplitType    string       `json:"split_type" binding:"required,split_type"`
	Participants []uint       `json:"participants"`
	Entries      []ShareEntry `json:"entries"`
}

// Create records a group expense paid by the authenticated user and splits
// it across the participants.
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	spec := services.SplitSpec{
		Type:         services.SplitType(req.SplitType),
		Participants: req.Participants,
	}
	for _, e := range req.Entries {
		spec.Entries = append(spec.Entries, split.Share{UserID: e.UserID, Amount: e.Amount})
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	expense, err := h.expenseService.CreateGroupExpense(userID, req.Title, req.Amount, req.Category, date, req.Description, spec)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE", "group_expense", expense.ID, c.ClientIP(), map[string]interface{}{
		"amount":     expense.Amount,
		"split_type": req.SplitType,
		"shares":     len(expense.Shares),
	})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// List returns every expense the authenticated user participates in, either
// as payer or as a share holder. One row per share.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.expenseService.ListGroupExpensesForUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": rows})
}

// SettleShare marks the authenticated user's share as settled. When the last
// pending share settles, the parent expense flips to settled too.
func (h *ExpenseHandler) SettleShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shareID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.SettleShare(shareID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SETTLE", "expense_share", shareID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Share settled successfully"})
}

// GetBalance returns the authenticated user's outstanding balance summary
// across unsettled group expenses.
func (h *ExpenseHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenseService.GetBalanceSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": summary})
}
