package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/shared/localtime"
)

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	// FindAll returns all expenses, newest first
	FindAll(ctx context.Context) ([]Expense, error)
	// FindByPeriod returns expenses with created_at in [from, to], newest
	// first. Note the inclusive end: callers extend "to" to end-of-day.
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Expense, error)
	// FindByCreatedRange returns expenses with created_at in the half-open
	// range, newest first
	FindByCreatedRange(ctx context.Context, period localtime.Range) ([]Expense, error)
	// FindByCalendarDate matches on DATE(created_at) equality with the given
	// local calendar day. The closing engine depends on this exact
	// comparison; it is intentionally different from FindByCreatedRange.
	FindByCalendarDate(ctx context.Context, day time.Time) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DailyClosingRepository defines persistence operations for daily closings.
// The date column carries a unique index; Save surfaces ErrAlreadyExists on
// a duplicate day, which is the authoritative conflict signal under
// concurrent realize calls.
type DailyClosingRepository interface {
	// FindByDate returns the closing for a local calendar day, or ErrNotFound
	FindByDate(ctx context.Context, day time.Time) (*DailyClosing, error)
	// FindAll returns all closings, most recent day first
	FindAll(ctx context.Context) ([]DailyClosing, error)
	Save(ctx context.Context, closing *DailyClosing) error
}

// ClosingSource aggregates the raw revenue and expense figures a closing is
// computed from. Revenue is recognized on line items whose updated_at falls
// in the day's half-open range.
type ClosingSource interface {
	// SumLineItemRevenue totals line item prices updated within the period
	SumLineItemRevenue(ctx context.Context, period localtime.Range) (decimal.Decimal, error)
	// LineItemRevenueByService groups the same rows by service name,
	// sorted by subtotal descending
	LineItemRevenueByService(ctx context.Context, period localtime.Range) ([]ServiceBreakdown, error)
}
