package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	workshopapp "github.com/taller/backend/internal/application/workshop"
)

// WorkOrderHandler handles work order API endpoints
type WorkOrderHandler struct {
	BaseHandler
	service *workshopapp.WorkOrderService
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(service *workshopapp.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{service: service}
}

// ListWorkOrders returns all work orders, newest first
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetWorkOrder returns a single work order with its line items
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// CreateWorkOrder opens a new work order, optionally with initial services
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req workshopapp.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// UpdateWorkOrder partially updates a work order's own fields
func (h *WorkOrderHandler) UpdateWorkOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	var req workshopapp.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// DeleteWorkOrder removes a work order and its line items
func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}

// AttachService adds one service to a work order. Attaching a service
// already on the order returns Conflict and leaves the total untouched.
func (h *WorkOrderHandler) AttachService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	var req workshopapp.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.service.AttachService(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// ReplaceServices swaps the full set of services on a work order in one
// transaction
func (h *WorkOrderHandler) ReplaceServices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	var req workshopapp.ReplaceServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.service.ReplaceAllServices(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// DetachService removes one line item from a work order
func (h *WorkOrderHandler) DetachService(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID")
		return
	}

	order, err := h.service.DetachService(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateLineItemComment replaces the comment on one line item
func (h *WorkOrderHandler) UpdateLineItemComment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID")
		return
	}

	var req workshopapp.UpdateLineItemCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.service.UpdateLineItemComment(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// CompleteLineItem sets the completed flag on one line item
func (h *WorkOrderHandler) CompleteLineItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID")
		return
	}

	var req workshopapp.CompleteLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.service.CompleteLineItem(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// RegisterRoutes registers work order routes
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/work-orders")
	{
		orders.GET("", h.ListWorkOrders)
		orders.POST("", h.CreateWorkOrder)
		orders.GET("/:id", h.GetWorkOrder)
		orders.PUT("/:id", h.UpdateWorkOrder)
		orders.DELETE("/:id", h.DeleteWorkOrder)
		orders.POST("/:id/services", h.AttachService)
		orders.PUT("/:id/services", h.ReplaceServices)
		orders.DELETE("/:id/services/:itemId", h.DetachService)
		orders.PATCH("/:id/services/:itemId/comment", h.UpdateLineItemComment)
		orders.PATCH("/:id/services/:itemId/complete", h.CompleteLineItem)
	}
}
