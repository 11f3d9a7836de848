package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/taller/backend/internal/application/catalog"
)

// ServiceHandler handles catalog service API endpoints
type ServiceHandler struct {
	BaseHandler
	service *catalogapp.CatalogService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(service *catalogapp.CatalogService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// ListServices returns all active catalog services ordered by name
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, services)
}

// GetService returns a single catalog service by ID
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, svc)
}

// CreateService adds a new service to the catalog
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req catalogapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	svc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, svc)
}

// UpdateService partially updates a catalog service
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	var req catalogapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	svc, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, svc)
}

// DeactivateService retires a service from the catalog. Existing work
// order line items keep their captured name and price.
func (h *ServiceHandler) DeactivateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}

// RegisterRoutes registers catalog routes
func (h *ServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeactivateService)
	}
}
