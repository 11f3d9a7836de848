package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ServiceRepository defines persistence operations for catalog services
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	FindByName(ctx context.Context, name string) (*Service, error)
	// FindActive returns active services ordered by name ascending
	FindActive(ctx context.Context) ([]Service, error)
	FindAll(ctx context.Context) ([]Service, error)
	Save(ctx context.Context, service *Service) error
	// Count reports the catalog size regardless of active state. Seeding
	// uses it to run only against an empty catalog.
	Count(ctx context.Context) (int64, error)
}
