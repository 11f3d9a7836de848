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

func mustNewClosing(t *testing.T, day time.Time, revenue, expense int64) *finance.DailyClosing {
	t.Helper()
	closing, err := finance.NewDailyClosing(day, decimal.NewFromInt(revenue), decimal.NewFromInt(expense))
	require.NoError(t, err)
	return closing
}

func TestGormDailyClosingRepository_SaveAndFindByDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDailyClosingRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	closing := mustNewClosing(t, day, 27000, 4500)
	require.NoError(t, repo.Save(ctx, closing))

	found, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.True(t, found.TotalRevenue.Equal(decimal.NewFromInt(27000)))
	assert.True(t, found.TotalExpense.Equal(decimal.NewFromInt(4500)))
	assert.True(t, found.NetBalance.Equal(decimal.NewFromInt(22500)))
}

func TestGormDailyClosingRepository_FindByDateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDailyClosingRepository(db)
	clock := localtime.Default()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	_, err := repo.FindByDate(context.Background(), day)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDailyClosingRepository_DuplicateDayConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDailyClosingRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	require.NoError(t, repo.Save(ctx, mustNewClosing(t, day, 1000, 0)))

	err := repo.Save(ctx, mustNewClosing(t, day, 2000, 0))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormDailyClosingRepository_FindAllMostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDailyClosingRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	older := time.Date(2026, 3, 9, 0, 0, 0, 0, clock.Location())
	newer := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	require.NoError(t, repo.Save(ctx, mustNewClosing(t, older, 1000, 0)))
	require.NoError(t, repo.Save(ctx, mustNewClosing(t, newer, 2000, 0)))

	closings, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, closings, 2)
	assert.True(t, closings[0].TotalRevenue.Equal(decimal.NewFromInt(2000)))
}
