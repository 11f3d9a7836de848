package report

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared/localtime"
	"github.com/taller/backend/internal/domain/workshop"
)

// ServiceTally is a per-service grouping row: how many times a service line
// was touched in a period and the revenue those lines carry
type ServiceTally struct {
	ServiceName string
	Count       int64
	Revenue     decimal.Decimal
}

// ClientTally is a per-client grouping row over orders created in a period
type ClientTally struct {
	ClientName string
	Jobs       int64
	TotalSpent decimal.Decimal
}

// GeneralTotals are the headline counters for the whole history
type GeneralTotals struct {
	Orders          int64
	DistinctClients int64
	ActiveServices  int64
	Revenue         decimal.Decimal
	CompletedOrders int64
	PendingOrders   int64
}

// DashboardRepository exposes the read-only queries the dashboard reports
// are built from. Nothing here mutates state.
type DashboardRepository interface {
	// RevenueOrders returns revenue-eligible orders (completed or delivered)
	// whose updated_at falls in the half-open period
	RevenueOrders(ctx context.Context, period localtime.Range) ([]workshop.WorkOrder, error)
	// ServiceCompletions groups line items updated in the period by service
	ServiceCompletions(ctx context.Context, period localtime.Range) ([]ServiceTally, error)
	// OrdersCreated returns orders created in the period
	OrdersCreated(ctx context.Context, period localtime.Range) ([]workshop.WorkOrder, error)
	// OpenOrders returns pending/in-progress orders created in the period,
	// with their line items loaded
	OpenOrders(ctx context.Context, period localtime.Range) ([]workshop.WorkOrder, error)
	// ExpensesInRange returns expenses created in the period, newest first
	ExpensesInRange(ctx context.Context, period localtime.Range) ([]finance.Expense, error)
	// GeneralTotals computes the all-time counters
	GeneralTotals(ctx context.Context) (*GeneralTotals, error)
}
