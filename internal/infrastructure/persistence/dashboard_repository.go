package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/report"
	"github.com/taller/backend/internal/domain/shared/localtime"
	"github.com/taller/backend/internal/domain/workshop"
	"github.com/taller/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDashboardRepository implements report.DashboardRepository and
// finance.ClosingSource over the same aggregation queries
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func statusStrings(statuses []workshop.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

// RevenueOrders returns completed or delivered orders last updated in the
// period
func (r *GormDashboardRepository) RevenueOrders(ctx context.Context, period localtime.Range) ([]workshop.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", statusStrings(workshop.RevenueStatuses())).
		Where("updated_at >= ? AND updated_at < ?", period.Start, period.End).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// ServiceCompletions groups line items updated in the period by service
// name, most worked first
func (r *GormDashboardRepository) ServiceCompletions(ctx context.Context, period localtime.Range) ([]report.ServiceTally, error) {
	var rows []struct {
		ServiceName string
		Count       int64
		Revenue     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderItemModel{}).
		Select("services.name AS service_name, COUNT(*) AS count, COALESCE(SUM(work_order_items.price), 0) AS revenue").
		Joins("JOIN services ON services.id = work_order_items.service_id").
		Where("work_order_items.updated_at >= ? AND work_order_items.updated_at < ?", period.Start, period.End).
		Group("services.name").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	tallies := make([]report.ServiceTally, len(rows))
	for i, row := range rows {
		tallies[i] = report.ServiceTally{
			ServiceName: row.ServiceName,
			Count:       row.Count,
			Revenue:     row.Revenue,
		}
	}
	return tallies, nil
}

// OrdersCreated returns orders created in the period
func (r *GormDashboardRepository) OrdersCreated(ctx context.Context, period localtime.Range) ([]workshop.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", period.Start, period.End).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// OpenOrders returns pending and in-progress orders created in the period,
// with their line items
func (r *GormDashboardRepository) OpenOrders(ctx context.Context, period localtime.Range) ([]workshop.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("status IN ?", statusStrings(workshop.OpenStatuses())).
		Where("created_at >= ? AND created_at < ?", period.Start, period.End).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// ExpensesInRange returns expenses created in the period, newest first
func (r *GormDashboardRepository) ExpensesInRange(ctx context.Context, period localtime.Range) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", period.Start, period.End).
		Order("created_at DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// GeneralTotals computes the all-time counters
func (r *GormDashboardRepository) GeneralTotals(ctx context.Context) (*report.GeneralTotals, error) {
	db := r.db.WithContext(ctx)
	totals := &report.GeneralTotals{Revenue: decimal.Zero}

	if err := db.Model(&models.WorkOrderModel{}).Count(&totals.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkOrderModel{}).
		Distinct("client_name").
		Count(&totals.DistinctClients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ServiceModel{}).
		Where("active = ?", true).
		Count(&totals.ActiveServices).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total decimal.Decimal
	}
	if err := db.Model(&models.WorkOrderModel{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status IN ?", statusStrings(workshop.RevenueStatuses())).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	totals.Revenue = revenue.Total

	if err := db.Model(&models.WorkOrderModel{}).
		Where("status IN ?", statusStrings(workshop.RevenueStatuses())).
		Count(&totals.CompletedOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkOrderModel{}).
		Where("status IN ?", statusStrings(workshop.OpenStatuses())).
		Count(&totals.PendingOrders).Error; err != nil {
		return nil, err
	}

	return totals, nil
}

// SumLineItemRevenue totals line item prices updated within the period
func (r *GormDashboardRepository) SumLineItemRevenue(ctx context.Context, period localtime.Range) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderItemModel{}).
		Select("COALESCE(SUM(price), 0) AS total").
		Where("updated_at >= ? AND updated_at < ?", period.Start, period.End).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// LineItemRevenueByService groups the period's line items by service name,
// largest subtotal first
func (r *GormDashboardRepository) LineItemRevenueByService(ctx context.Context, period localtime.Range) ([]finance.ServiceBreakdown, error) {
	var rows []struct {
		ServiceName string
		Count       int
		Subtotal    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderItemModel{}).
		Select("services.name AS service_name, COUNT(*) AS count, COALESCE(SUM(work_order_items.price), 0) AS subtotal").
		Joins("JOIN services ON services.id = work_order_items.service_id").
		Where("work_order_items.updated_at >= ? AND work_order_items.updated_at < ?", period.Start, period.End).
		Group("services.name").
		Order("subtotal DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	breakdown := make([]finance.ServiceBreakdown, len(rows))
	for i, row := range rows {
		breakdown[i] = finance.ServiceBreakdown{
			ServiceName: row.ServiceName,
			Count:       row.Count,
			Subtotal:    row.Subtotal,
		}
	}
	return breakdown, nil
}

func toDomainOrders(orderModels []models.WorkOrderModel) []workshop.WorkOrder {
	orders := make([]workshop.WorkOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}
