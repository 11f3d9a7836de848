package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/localtime"
)

// CashClosingService realizes and previews the end-of-day cash
// reconciliation. Revenue comes from line items updated within the day;
// expenses match on the calendar date of their creation. The two
// comparisons differ on purpose and must stay that way for closings to
// reproduce historical figures.
type CashClosingService struct {
	closings finance.DailyClosingRepository
	expenses finance.ExpenseRepository
	source   finance.ClosingSource
	clock    *localtime.Normalizer
}

// NewCashClosingService creates a new CashClosingService
func NewCashClosingService(
	closings finance.DailyClosingRepository,
	expenses finance.ExpenseRepository,
	source finance.ClosingSource,
	clock *localtime.Normalizer,
) *CashClosingService {
	return &CashClosingService{
		closings: closings,
		expenses: expenses,
		source:   source,
		clock:    clock,
	}
}

// ClosingResponse represents a realized daily closing in API responses
type ClosingResponse struct {
	ID           uuid.UUID       `json:"id"`
	Date         string          `json:"date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ServiceBreakdownResponse is one revenue row of a closing preview
type ServiceBreakdownResponse struct {
	ServiceName string          `json:"service_name"`
	Count       int             `json:"count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ExpenseBreakdownResponse is one expense row of a closing preview
type ExpenseBreakdownResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PreviewResponse represents the itemized, unpersisted closing figures
type PreviewResponse struct {
	Date         string                     `json:"date"`
	TotalRevenue decimal.Decimal            `json:"total_revenue"`
	TotalExpense decimal.Decimal            `json:"total_expense"`
	NetBalance   decimal.Decimal            `json:"net_balance"`
	ServiceCount int                        `json:"service_count"`
	Services     []ServiceBreakdownResponse `json:"services"`
	Expenses     []ExpenseBreakdownResponse `json:"expenses"`
}

// Realize computes and persists the closing for a day (today when the day
// string is empty). At most one closing exists per day; a second call
// returns Conflict. The unique index on the date column settles concurrent
// realize calls.
func (s *CashClosingService) Realize(ctx context.Context, day string) (*ClosingResponse, error) {
	date, err := s.clock.ResolveDay(day)
	if err != nil {
		return nil, err
	}
	localDay := s.clock.LocalDay(date)

	if _, err := s.closings.FindByDate(ctx, localDay); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A closing already exists for this date")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	revenue, expense, err := s.dayTotals(ctx, localDay)
	if err != nil {
		return nil, err
	}

	closing, err := finance.NewDailyClosing(localDay, revenue, expense)
	if err != nil {
		return nil, err
	}
	if err := s.closings.Save(ctx, closing); err != nil {
		return nil, err
	}
	return s.toClosingResponse(closing), nil
}

// Preview computes the itemized figures for a day without persisting
// anything. It works the same whether or not the day was already realized.
func (s *CashClosingService) Preview(ctx context.Context, day string) (*PreviewResponse, error) {
	date, err := s.clock.ResolveDay(day)
	if err != nil {
		return nil, err
	}
	localDay := s.clock.LocalDay(date)
	period := s.clock.DayRange(localDay)

	breakdown, err := s.source.LineItemRevenueByService(ctx, period)
	if err != nil {
		return nil, err
	}
	dayExpenses, err := s.expenses.FindByCalendarDate(ctx, localDay)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	serviceCount := 0
	services := make([]ServiceBreakdownResponse, len(breakdown))
	for i, row := range breakdown {
		revenue = revenue.Add(row.Subtotal)
		serviceCount += row.Count
		services[i] = ServiceBreakdownResponse{
			ServiceName: row.ServiceName,
			Count:       row.Count,
			Subtotal:    row.Subtotal,
		}
	}

	expense := finance.TotalExpenses(dayExpenses)
	expenseRows := make([]ExpenseBreakdownResponse, len(dayExpenses))
	for i := range dayExpenses {
		expenseRows[i] = ExpenseBreakdownResponse{
			Description: dayExpenses[i].Description(),
			Amount:      dayExpenses[i].Amount,
		}
	}

	return &PreviewResponse{
		Date:         s.clock.FormatDay(localDay),
		TotalRevenue: revenue.Round(2),
		TotalExpense: expense,
		NetBalance:   revenue.Sub(expense).Round(2),
		ServiceCount: serviceCount,
		Services:     services,
		Expenses:     expenseRows,
	}, nil
}

// List returns all realized closings, most recent day first
func (s *CashClosingService) List(ctx context.Context) ([]ClosingResponse, error) {
	closings, err := s.closings.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClosingResponse, len(closings))
	for i := range closings {
		out[i] = *s.toClosingResponse(&closings[i])
	}
	return out, nil
}

// GetByDay returns the realized closing for one day, or NotFound
func (s *CashClosingService) GetByDay(ctx context.Context, day string) (*ClosingResponse, error) {
	date, err := s.clock.ParseDay(day)
	if err != nil {
		return nil, err
	}
	closing, err := s.closings.FindByDate(ctx, s.clock.LocalDay(date))
	if err != nil {
		return nil, err
	}
	return s.toClosingResponse(closing), nil
}

func (s *CashClosingService) dayTotals(ctx context.Context, localDay time.Time) (decimal.Decimal, decimal.Decimal, error) {
	revenue, err := s.source.SumLineItemRevenue(ctx, s.clock.DayRange(localDay))
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	dayExpenses, err := s.expenses.FindByCalendarDate(ctx, localDay)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return revenue, finance.TotalExpenses(dayExpenses), nil
}

func (s *CashClosingService) toClosingResponse(c *finance.DailyClosing) *ClosingResponse {
	return &ClosingResponse{
		ID:           c.ID,
		Date:         s.clock.FormatDay(c.Date),
		TotalRevenue: c.TotalRevenue,
		TotalExpense: c.TotalExpense,
		NetBalance:   c.NetBalance,
		CreatedAt:    c.CreatedAt,
	}
}
