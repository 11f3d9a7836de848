package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/taller/backend/internal/application/finance"
)

// ExpenseHandler handles expense ledger API endpoints
type ExpenseHandler struct {
	BaseHandler
	service *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// ListExpenses returns expenses, newest first. When from and to query
// parameters are present the list is restricted to that inclusive period.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	if from != "" || to != "" {
		expenses, err := h.service.ListByPeriod(c.Request.Context(), from, to)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, expenses)
		return
	}

	expenses, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// GetExpense returns a single expense by ID
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid expense ID")
		return
	}

	expense, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// CreateExpense records a new expense
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	expense, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// UpdateExpense partially updates an expense
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid expense ID")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	expense, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// DeleteExpense removes an expense from the ledger
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid expense ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}

// TotalData wraps a period total in responses
type TotalData struct {
	Total string `json:"total"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// GetExpenseTotal returns the summed amount over an inclusive period
func (h *ExpenseHandler) GetExpenseTotal(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	total, err := h.service.TotalByPeriod(c.Request.Context(), from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, TotalData{Total: total.String(), From: from, To: to})
}

// ListExpensesByMonth returns expenses of one calendar month. Year and
// month default to the current month when absent.
func (h *ExpenseHandler) ListExpensesByMonth(c *gin.Context) {
	year, err := parseIntQuery(c, "year")
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}
	month, err := parseIntQuery(c, "month")
	if err != nil {
		h.BadRequest(c, "Invalid month")
		return
	}

	expenses, err := h.service.ListByMonth(c.Request.Context(), year, month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// GetExpenseStatistics summarizes the whole ledger
func (h *ExpenseHandler) GetExpenseStatistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// parseIntQuery reads an optional integer query parameter, zero when absent
func parseIntQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.CreateExpense)
		expenses.GET("/total", h.GetExpenseTotal)
		expenses.GET("/month", h.ListExpensesByMonth)
		expenses.GET("/statistics", h.GetExpenseStatistics)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}
