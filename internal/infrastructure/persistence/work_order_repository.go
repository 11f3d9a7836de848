package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/workshop"
	"github.com/taller/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWorkOrderRepository implements workshop.WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("work_order_items.created_at ASC")
	}).Preload("Items.Service")
}

// FindByID loads a work order with its line items and service names
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := preloadItems(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all work orders with items, newest first
func (r *GormWorkOrderRepository) FindAll(ctx context.Context) ([]workshop.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	if err := preloadItems(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]workshop.WorkOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// Save persists the order, its line items, and the derived total in one
// transaction: items no longer on the aggregate are deleted, the rest are
// upserted. A racing duplicate attach is rejected by the (work_order_id,
// service_id) unique index and surfaces as ErrAlreadyExists.
func (r *GormWorkOrderRepository) Save(ctx context.Context, order *workshop.WorkOrder) error {
	var model models.WorkOrderModel
	model.FromDomain(order)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(&model).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, len(model.Items))
		for i := range model.Items {
			keep[i] = model.Items[i].ID
		}
		query := tx.Where("work_order_id = ?", model.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		if err := query.Delete(&models.WorkOrderItemModel{}).Error; err != nil {
			return err
		}

		for i := range model.Items {
			if err := tx.Omit("Service").Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a work order; its line items go with it
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", id).Delete(&models.WorkOrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.WorkOrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
