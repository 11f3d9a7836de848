package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/localtime"
)

// ExpenseService provides application-level operations over the expense
// ledger
type ExpenseService struct {
	repo  finance.ExpenseRepository
	clock *localtime.Normalizer
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo finance.ExpenseRepository, clock *localtime.Normalizer) *ExpenseService {
	return &ExpenseService{repo: repo, clock: clock}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Memo   string          `json:"memo"`
}

// UpdateExpenseRequest represents a partial update to an expense
type UpdateExpenseRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Memo   *string          `json:"memo"`
}

// ExpenseStatistics summarizes the whole ledger. All figures are zero when
// no expenses exist.
type ExpenseStatistics struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(req.Amount, req.Memo)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Get returns one expense by ID
func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List returns all expenses, newest first
func (s *ExpenseService) List(ctx context.Context) ([]ExpenseResponse, error) {
	expenses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toExpenseResponses(expenses), nil
}

// Update patches an expense's amount and/or memo
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expense.Update(req.Amount, req.Memo); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListByPeriod returns expenses recorded between two local days, inclusive.
// The end day is extended to its last instant so a bare date covers the
// whole day.
func (s *ExpenseService) ListByPeriod(ctx context.Context, from, to string) ([]ExpenseResponse, error) {
	start, end, err := s.resolvePeriod(from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.FindByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toExpenseResponses(expenses), nil
}

// TotalByPeriod sums expense amounts over the same inclusive period
func (s *ExpenseService) TotalByPeriod(ctx context.Context, from, to string) (decimal.Decimal, error) {
	start, end, err := s.resolvePeriod(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.repo.FindByPeriod(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total.Round(2), nil
}

// ListByMonth returns expenses of one calendar month, defaulting to the
// current local month when year or month is zero
func (s *ExpenseService) ListByMonth(ctx context.Context, year, month int) ([]ExpenseResponse, error) {
	ref := s.clock.Now()
	if year != 0 && month != 0 {
		if month < 1 || month > 12 {
			return nil, shared.NewDomainError("INVALID_DATE", "Month must be between 1 and 12")
		}
		ref = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.clock.Location())
	}
	expenses, err := s.repo.FindByCreatedRange(ctx, s.clock.MonthRange(ref))
	if err != nil {
		return nil, err
	}
	return toExpenseResponses(expenses), nil
}

// Statistics summarizes the full ledger
func (s *ExpenseService) Statistics(ctx context.Context) (*ExpenseStatistics, error) {
	expenses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ExpenseStatistics{
		Total:   decimal.Zero,
		Average: decimal.Zero,
		Max:     decimal.Zero,
		Min:     decimal.Zero,
	}
	if len(expenses) == 0 {
		return stats, nil
	}

	stats.Count = len(expenses)
	stats.Max = expenses[0].Amount
	stats.Min = expenses[0].Amount
	for i := range expenses {
		amount := expenses[i].Amount
		stats.Total = stats.Total.Add(amount)
		if amount.GreaterThan(stats.Max) {
			stats.Max = amount
		}
		if amount.LessThan(stats.Min) {
			stats.Min = amount
		}
	}
	stats.Total = stats.Total.Round(2)
	stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	return stats, nil
}

func (s *ExpenseService) resolvePeriod(from, to string) (time.Time, time.Time, error) {
	start, err := s.clock.ParseDay(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDay, err := s.clock.ParseDay(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := s.clock.DayRange(endDay).End.Add(-time.Nanosecond)
	return start, end, nil
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		Amount:    e.Amount,
		Memo:      e.Memo,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = *toExpenseResponse(&expenses[i])
	}
	return out
}
