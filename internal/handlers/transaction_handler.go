package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "splitledger/internal/errors"
	"splitledger/internal/models"
	"splitledger/internal/pagination"
	"splitledger/internal/services"
)

// TransactionHandler handles personal transaction endpoints.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest is the payload for creating or updating a transaction.
// Amount is in minor units (cents).
type TransactionRequest struct {
	Amount        int64      `json:"amount" binding:"required,gt=0"`
	Type          string     `json:"type" binding:"required,transaction_type"`
	Category      string     `json:"category" binding:"max=100"`
	Date          *time.Time `json:"date"`
	Description   string     `json:"description" binding:"max=500"`
	PaymentMethod string     `json:"payment_method" binding:"max=50"`
	Tags          string     `json:"tags" binding:"max=255"`
}

// listQuery holds the query parameters for listing transactions.
type listQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Category string `form:"category"`
	Type     string `form:"type" binding:"omitempty,transaction_type"`
}

// Create records a new transaction for the authenticated user.
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	txn, err := h.transactionService.AddTransaction(userID, req.Amount, models.TransactionType(req.Type), req.Category, date, req.Description, req.PaymentMethod, req.Tags)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE", "transaction", txn.ID, c.ClientIP(), map[string]interface{}{
		"amount": txn.Amount,
		"type":   txn.Type,
	})

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// Update replaces the mutable fields of an owned transaction.
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	txn, err := h.transactionService.UpdateTransaction(transactionID, userID, req.Amount, models.TransactionType(req.Type), req.Category, date, req.Description, req.PaymentMethod, req.Tags)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE", "transaction", txn.ID, c.ClientIP(), map[string]interface{}{
		"amount": txn.Amount,
		"type":   txn.Type,
	})

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// Delete removes an owned transaction.
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// List returns the authenticated user's transactions within a date range,
// optionally filtered by category and type, newest first, paginated.
// The range defaults to the last 30 days.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if q.From != "" {
		from, err = time.Parse("2006-01-02", q.From)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid 'from' date, expected YYYY-MM-DD"))
			return
		}
	}
	if q.To != "" {
		to, err = time.Parse("2006-01-02", q.To)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid 'to' date, expected YYYY-MM-DD"))
			return
		}
		// Make the upper bound inclusive of the whole day.
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	var filter services.TransactionFilter
	if q.Category != "" {
		filter.Category = &q.Category
	}
	if q.Type != "" {
		txnType := models.TransactionType(q.Type)
		filter.Type = &txnType
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.transactionService.ListTransactions(userID, from, to, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Categories returns the distinct category names used by the user.
func (h *TransactionHandler) Categories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.transactionService.DistinctCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
