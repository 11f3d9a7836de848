package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/localtime"
	"github.com/taller/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all expenses, newest first
func (r *GormExpenseRepository) FindAll(ctx context.Context) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindByPeriod returns expenses created in [from, to], newest first
func (r *GormExpenseRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindByCreatedRange returns expenses created in the half-open range,
// newest first
func (r *GormExpenseRepository) FindByCreatedRange(ctx context.Context, period localtime.Range) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", period.Start, period.End).
		Order("created_at DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindByCalendarDate matches on DATE(created_at) equality with the local
// calendar day. The closing engine reads expenses through this exact
// comparison.
func (r *GormExpenseRepository) FindByCalendarDate(ctx context.Context, day time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("DATE(created_at) = DATE(?)", day).
		Order("created_at DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainExpenses(expenseModels []models.ExpenseModel) []finance.Expense {
	expenses := make([]finance.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}
	return expenses
}
