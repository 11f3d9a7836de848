package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDailyClosingRepository implements finance.DailyClosingRepository
// using GORM
type GormDailyClosingRepository struct {
	db *gorm.DB
}

// NewGormDailyClosingRepository creates a new GormDailyClosingRepository
func NewGormDailyClosingRepository(db *gorm.DB) *GormDailyClosingRepository {
	return &GormDailyClosingRepository{db: db}
}

// FindByDate finds the closing for a local calendar day
func (r *GormDailyClosingRepository) FindByDate(ctx context.Context, day time.Time) (*finance.DailyClosing, error) {
	var model models.DailyClosingModel
	if err := r.db.WithContext(ctx).
		Where("DATE(date) = DATE(?)", day).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all closings, most recent day first
func (r *GormDailyClosingRepository) FindAll(ctx context.Context) ([]finance.DailyClosing, error) {
	var closingModels []models.DailyClosingModel
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&closingModels).Error; err != nil {
		return nil, err
	}
	closings := make([]finance.DailyClosing, len(closingModels))
	for i := range closingModels {
		closings[i] = *closingModels[i].ToDomain()
	}
	return closings, nil
}

// Save persists a closing. The unique index on date turns a duplicate day
// into ErrAlreadyExists, which settles concurrent realize calls.
func (r *GormDailyClosingRepository) Save(ctx context.Context, closing *finance.DailyClosing) error {
	var model models.DailyClosingModel
	model.FromDomain(closing)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}
