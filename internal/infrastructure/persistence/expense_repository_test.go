package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/localtime"
)

func mustNewExpense(t *testing.T, amount int64, memo string, createdAt time.Time) *finance.Expense {
	t.Helper()
	expense, err := finance.NewExpense(decimal.NewFromInt(amount), memo)
	require.NoError(t, err)
	expense.CreatedAt = createdAt
	expense.UpdatedAt = createdAt
	return expense
}

func TestGormExpenseRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()

	expense := mustNewExpense(t, 4500, "gasolina", time.Now())
	require.NoError(t, repo.Save(ctx, expense))

	found, err := repo.FindByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(4500)))
	assert.Equal(t, "gasolina", found.Memo)
}

func TestGormExpenseRepository_FindByPeriodInclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	inRange := mustNewExpense(t, 1000, "a", time.Date(2026, 3, 5, 12, 0, 0, 0, clock.Location()))
	atEnd := mustNewExpense(t, 2000, "b", time.Date(2026, 3, 7, 23, 0, 0, 0, clock.Location()))
	after := mustNewExpense(t, 3000, "c", time.Date(2026, 3, 8, 1, 0, 0, 0, clock.Location()))
	for _, e := range []*finance.Expense{inRange, atEnd, after} {
		require.NoError(t, repo.Save(ctx, e))
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, clock.Location())
	to := time.Date(2026, 3, 7, 23, 59, 59, 999999999, clock.Location())
	expenses, err := repo.FindByPeriod(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "b", expenses[0].Memo)
	assert.Equal(t, "a", expenses[1].Memo)
}

func TestGormExpenseRepository_FindByCreatedRangeHalfOpen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	period := clock.DayRange(day)

	atStart := mustNewExpense(t, 1000, "start", period.Start)
	atEnd := mustNewExpense(t, 2000, "end", period.End)
	require.NoError(t, repo.Save(ctx, atStart))
	require.NoError(t, repo.Save(ctx, atEnd))

	expenses, err := repo.FindByCreatedRange(ctx, period)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "start", expenses[0].Memo)
}

func TestGormExpenseRepository_FindByCalendarDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	onDay := mustNewExpense(t, 1000, "mismo dia", time.Date(2026, 3, 10, 12, 0, 0, 0, clock.Location()))
	otherDay := mustNewExpense(t, 2000, "otro dia", time.Date(2026, 3, 11, 12, 0, 0, 0, clock.Location()))
	require.NoError(t, repo.Save(ctx, onDay))
	require.NoError(t, repo.Save(ctx, otherDay))

	expenses, err := repo.FindByCalendarDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "mismo dia", expenses[0].Memo)
}

func TestGormExpenseRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()

	expense := mustNewExpense(t, 4500, "gasolina", time.Now())
	require.NoError(t, repo.Save(ctx, expense))
	require.NoError(t, repo.Delete(ctx, expense.ID))

	_, err := repo.FindByID(ctx, expense.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, expense.ID), shared.ErrNotFound)
}
