package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taller/backend/internal/domain/catalog"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a service by its exact name
func (r *GormServiceRepository) FindByName(ctx context.Context, name string) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns active services ordered by name
func (r *GormServiceRepository) FindActive(ctx context.Context) ([]catalog.Service, error) {
	var serviceModels []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}
	return toDomainServices(serviceModels), nil
}

// FindAll returns all services, active or not, ordered by name
func (r *GormServiceRepository) FindAll(ctx context.Context) ([]catalog.Service, error) {
	var serviceModels []models.ServiceModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&serviceModels).Error; err != nil {
		return nil, err
	}
	return toDomainServices(serviceModels), nil
}

// Save creates or updates a service. A duplicate name surfaces as
// ErrAlreadyExists through the unique index.
func (r *GormServiceRepository) Save(ctx context.Context, svc *catalog.Service) error {
	var model models.ServiceModel
	model.FromDomain(svc)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Count returns the total number of services
func (r *GormServiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ServiceModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainServices(serviceModels []models.ServiceModel) []catalog.Service {
	services := make([]catalog.Service, len(serviceModels))
	for i := range serviceModels {
		services[i] = *serviceModels[i].ToDomain()
	}
	return services
}
