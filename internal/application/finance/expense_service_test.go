package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/localtime"
)

func newExpenseFixture(t *testing.T) (*ExpenseService, *mockExpenseRepository, *localtime.Normalizer) {
	t.Helper()
	repo := new(mockExpenseRepository)
	clock := localtime.Default()
	return NewExpenseService(repo, clock), repo, clock
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("records an expense", func(t *testing.T) {
		svc, repo, _ := newExpenseFixture(t)
		repo.On("Save", ctx, mock.AnythingOfType("*finance.Expense")).Return(nil)

		resp, err := svc.Create(ctx, CreateExpenseRequest{
			Amount: decimal.NewFromInt(4500),
			Memo:   "gasolina",
		})
		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(4500)))
		assert.Equal(t, "gasolina", resp.Memo)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, repo, _ := newExpenseFixture(t)

		_, err := svc.Create(ctx, CreateExpenseRequest{Amount: decimal.Zero})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newExpenseFixture(t)

	expense, err := finance.NewExpense(decimal.NewFromInt(1000), "repuestos")
	require.NoError(t, err)

	repo.On("FindByID", ctx, expense.ID).Return(expense, nil)
	repo.On("Save", ctx, expense).Return(nil)

	amount := decimal.NewFromInt(1500)
	resp, err := svc.Update(ctx, expense.ID, UpdateExpenseRequest{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(amount))
	assert.Equal(t, "repuestos", resp.Memo)
}

func TestExpenseService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newExpenseFixture(t)

	missing := uuid.New()
	repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, missing), shared.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestExpenseService_ListByPeriod(t *testing.T) {
	ctx := context.Background()
	svc, repo, clock := newExpenseFixture(t)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, clock.Location())
	end := time.Date(2026, 3, 7, 23, 59, 59, 999999999, clock.Location())
	repo.On("FindByPeriod", ctx, start, end).Return([]finance.Expense{}, nil)

	_, err := svc.ListByPeriod(ctx, "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestExpenseService_TotalByPeriod(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newExpenseFixture(t)

	a, _ := finance.NewExpense(decimal.NewFromInt(4500), "gasolina")
	b, _ := finance.NewExpense(decimal.NewFromInt(2000), "tornillos")
	repo.On("FindByPeriod", ctx, mock.Anything, mock.Anything).Return([]finance.Expense{*a, *b}, nil)

	total, err := svc.TotalByPeriod(ctx, "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(6500)))
}

func TestExpenseService_ListByMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("queries the month's half-open range", func(t *testing.T) {
		svc, repo, clock := newExpenseFixture(t)

		ref := time.Date(2026, 2, 1, 0, 0, 0, 0, clock.Location())
		repo.On("FindByCreatedRange", ctx, clock.MonthRange(ref)).Return([]finance.Expense{}, nil)

		_, err := svc.ListByMonth(ctx, 2026, 2)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		svc, _, _ := newExpenseFixture(t)
		_, err := svc.ListByMonth(ctx, 2026, 13)
		require.Error(t, err)
	})
}

func TestExpenseService_Statistics(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes the ledger", func(t *testing.T) {
		svc, repo, _ := newExpenseFixture(t)

		a, _ := finance.NewExpense(decimal.NewFromInt(4500), "gasolina")
		b, _ := finance.NewExpense(decimal.NewFromInt(2000), "tornillos")
		c, _ := finance.NewExpense(decimal.NewFromInt(8000), "aceite")
		repo.On("FindAll", ctx).Return([]finance.Expense{*a, *b, *c}, nil)

		stats, err := svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Count)
		assert.True(t, stats.Total.Equal(decimal.NewFromInt(14500)))
		assert.True(t, stats.Average.Equal(decimal.NewFromFloat(4833.33)))
		assert.True(t, stats.Max.Equal(decimal.NewFromInt(8000)))
		assert.True(t, stats.Min.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("returns zeros for an empty ledger", func(t *testing.T) {
		svc, repo, _ := newExpenseFixture(t)
		repo.On("FindAll", ctx).Return([]finance.Expense{}, nil)

		stats, err := svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Count)
		assert.True(t, stats.Total.IsZero())
		assert.True(t, stats.Average.IsZero())
		assert.True(t, stats.Max.IsZero())
		assert.True(t, stats.Min.IsZero())
	})
}
