package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/valueobject"
)

// DailyClosing is the immutable end-of-day snapshot: revenue, expenses and
// the resulting balance for one calendar day. At most one closing exists per
// day, enforced by a unique index on the date column; once created there is
// no amend or re-open path.
type DailyClosing struct {
	shared.BaseEntity
	Date         time.Time // local calendar day, stored date-only
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetBalance   decimal.Decimal
}

// NewDailyClosing creates the closing snapshot for a day.
// NetBalance is always derived, never supplied.
func NewDailyClosing(date time.Time, totalRevenue, totalExpense decimal.Decimal) (*DailyClosing, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Closing date cannot be zero")
	}
	revenue := valueobject.NewMoneyCRC(totalRevenue).Round()
	expense := valueobject.NewMoneyCRC(totalExpense).Round()
	net, err := revenue.Sub(expense)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}
	return &DailyClosing{
		BaseEntity:   shared.NewBaseEntity(),
		Date:         date,
		TotalRevenue: revenue.Amount(),
		TotalExpense: expense.Amount(),
		NetBalance:   net.Amount(),
	}, nil
}

// ServiceBreakdown is one row of a closing preview's revenue itemization
type ServiceBreakdown struct {
	ServiceName string
	Count       int
	Subtotal    decimal.Decimal
}

// ExpenseBreakdown is one row of a closing preview's expense itemization
type ExpenseBreakdown struct {
	Description string
	Amount      decimal.Decimal
}

// ClosingPreview is the unpersisted variant of a daily closing, with the
// totals itemized for review before (or instead of) realizing the day
type ClosingPreview struct {
	Date         time.Time
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetBalance   decimal.Decimal
	ServiceCount int
	Services     []ServiceBreakdown // sorted by subtotal descending
	Expenses     []ExpenseBreakdown
}
