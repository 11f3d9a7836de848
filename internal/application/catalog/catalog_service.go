package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/catalog"
	"github.com/taller/backend/internal/domain/shared"
)

// CatalogService provides application-level operations over the service
// catalog
type CatalogService struct {
	repo catalog.ServiceRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo catalog.ServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateServiceRequest represents a request to create a catalog service
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateServiceRequest represents a partial update to a catalog service
type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// Create adds a new service to the catalog. Name uniqueness is ultimately
// enforced by the store's unique index; the lookup here only gives a
// friendlier early answer.
func (s *CatalogService) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A service with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	svc, err := catalog.NewService(req.Name, req.Description, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// List returns the active catalog, ordered by name
func (s *CatalogService) List(ctx context.Context) ([]ServiceResponse, error) {
	services, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceResponse, len(services))
	for i := range services {
		out[i] = *toServiceResponse(&services[i])
	}
	return out, nil
}

// Get returns one service by ID
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// Update patches a service's catalog fields. Already-attached line items
// keep their snapshot prices.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Update(req.Name, req.Description, req.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// Deactivate soft-removes a service from the catalog
func (s *CatalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	svc.Deactivate()
	return s.repo.Save(ctx, svc)
}

// Seed populates the default workshop catalog when the table is empty.
// Calling it again is a no-op.
func (s *CatalogService) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, entry := range catalog.DefaultServices() {
		svc, err := catalog.NewService(entry.Name, entry.Description, entry.UnitPrice)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}

func toServiceResponse(svc *catalog.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		UnitPrice:   svc.UnitPrice,
		Active:      svc.Active,
		CreatedAt:   svc.CreatedAt,
		UpdatedAt:   svc.UpdatedAt,
	}
}
