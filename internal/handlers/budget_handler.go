package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitledger/internal/errors"
	"splitledger/internal/services"
)

// BudgetHandler handles monthly budget endpoints.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// BudgetRequest is the payload for setting a budget. An empty category sets
// the overall monthly budget.
type BudgetRequest struct {
	YearMonth string `json:"year_month" binding:"required,year_month"`
	Category  string `json:"category" binding:"max=100"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// budgetQuery holds the query parameters for reading budgets. The category
// parameter is read separately so an explicit empty value can be told apart
// from an absent one.
type budgetQuery struct {
	YearMonth string `form:"year_month" binding:"required,year_month"`
}

// Upsert creates or overwrites the budget for (month, category).
func (h *BudgetHandler) Upsert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpsertBudget(userID, req.YearMonth, req.Category, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT", "budget", budget.ID, c.ClientIP(), map[string]interface{}{
		"year_month": budget.YearMonth,
		"category":   budget.Category,
		"amount":     budget.Amount,
	})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// Get returns either one budget (when category is given) or all budgets for
// the month.
func (h *BudgetHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q budgetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// An explicit category parameter, even empty, selects a single budget.
	// An empty category is the overall monthly budget.
	if category, ok := c.GetQuery("category"); ok {
		budget, err := h.budgetService.GetBudget(userID, q.YearMonth, category)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"budget": budget})
		return
	}

	budgets, err := h.budgetService.GetBudgetsForMonth(userID, q.YearMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}
