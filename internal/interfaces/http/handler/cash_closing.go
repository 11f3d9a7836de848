package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/taller/backend/internal/application/finance"
)

// CashClosingHandler handles daily cash closing API endpoints
type CashClosingHandler struct {
	BaseHandler
	service *financeapp.CashClosingService
}

// NewCashClosingHandler creates a new CashClosingHandler
func NewCashClosingHandler(service *financeapp.CashClosingService) *CashClosingHandler {
	return &CashClosingHandler{service: service}
}

// RealizeClosingRequest selects the day to close, today when empty
type RealizeClosingRequest struct {
	Date string `json:"date"`
}

// RealizeClosing computes and persists the closing for a day. A day can
// be closed at most once; later calls return Conflict.
func (h *CashClosingHandler) RealizeClosing(c *gin.Context) {
	var req RealizeClosingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	closing, err := h.service.Realize(c.Request.Context(), req.Date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, closing)
}

// PreviewClosing returns the itemized closing figures for a day without
// persisting anything
func (h *CashClosingHandler) PreviewClosing(c *gin.Context) {
	preview, err := h.service.Preview(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preview)
}

// ListClosings returns all realized closings, most recent day first
func (h *CashClosingHandler) ListClosings(c *gin.Context) {
	closings, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, closings)
}

// GetClosing returns the realized closing of one day
func (h *CashClosingHandler) GetClosing(c *gin.Context) {
	closing, err := h.service.GetByDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, closing)
}

// RegisterRoutes registers cash closing routes
func (h *CashClosingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	closings := rg.Group("/closings")
	{
		closings.GET("", h.ListClosings)
		closings.POST("", h.RealizeClosing)
		closings.GET("/preview", h.PreviewClosing)
		closings.GET("/:date", h.GetClosing)
	}
}
