package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taller/backend/internal/domain/shared/localtime"
	"github.com/taller/backend/internal/domain/workshop"
	"gorm.io/gorm"
)

type dashboardFixture struct {
	repo  *GormDashboardRepository
	db    *gorm.DB
	clock *localtime.Normalizer
	day   time.Time
}

// seeds one completed order (frenos 15000 + luces 3000), one delivered
// order (alineado 7000), and one pending order, all touching the same day
func setupDashboardFixture(t *testing.T) dashboardFixture {
	t.Helper()
	db := setupTestDB(t)
	services := NewGormServiceRepository(db)
	orders := NewGormWorkOrderRepository(db)
	ctx := context.Background()
	clock := localtime.Default()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, clock.Location())
	noon := day.Add(12 * time.Hour)

	frenos := mustNewService(t, "frenos", 15000)
	luces := mustNewService(t, "luces", 3000)
	alineado := mustNewService(t, "alineado", 7000)
	require.NoError(t, services.Save(ctx, frenos))
	require.NoError(t, services.Save(ctx, luces))
	require.NoError(t, services.Save(ctx, alineado))

	completed := mustNewOrder(t, "Carlos Mora")
	_, err := completed.AttachItem(frenos.ID, frenos.Name, frenos.UnitPrice, "")
	require.NoError(t, err)
	_, err = completed.AttachItem(luces.ID, luces.Name, luces.UnitPrice, "")
	require.NoError(t, err)
	completed.Status = workshop.StatusCompleted
	completed.PaymentMethod = workshop.PaymentCash
	stampOrder(completed, noon)
	require.NoError(t, orders.Save(ctx, completed))

	delivered := mustNewOrder(t, "Ana Rojas")
	_, err = delivered.AttachItem(alineado.ID, alineado.Name, alineado.UnitPrice, "")
	require.NoError(t, err)
	delivered.Status = workshop.StatusDelivered
	delivered.PaymentMethod = workshop.PaymentCard
	stampOrder(delivered, noon)
	require.NoError(t, orders.Save(ctx, delivered))

	pending := mustNewOrder(t, "Luis Vega")
	stampOrder(pending, noon)
	require.NoError(t, orders.Save(ctx, pending))

	return dashboardFixture{
		repo:  NewGormDashboardRepository(db),
		db:    db,
		clock: clock,
		day:   day,
	}
}

func stampOrder(order *workshop.WorkOrder, at time.Time) {
	order.CreatedAt = at
	order.UpdatedAt = at
	for i := range order.Items {
		order.Items[i].CreatedAt = at
		order.Items[i].UpdatedAt = at
	}
}

func TestGormDashboardRepository_RevenueOrders(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	orders, err := f.repo.RevenueOrders(ctx, f.clock.DayRange(f.day))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(25000)))
}

func TestGormDashboardRepository_ServiceCompletions(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	tallies, err := f.repo.ServiceCompletions(ctx, f.clock.DayRange(f.day))
	require.NoError(t, err)
	require.Len(t, tallies, 3)

	byName := make(map[string]int64)
	for _, tally := range tallies {
		byName[tally.ServiceName] = tally.Count
	}
	assert.Equal(t, int64(1), byName["frenos"])
	assert.Equal(t, int64(1), byName["luces"])
	assert.Equal(t, int64(1), byName["alineado"])
}

func TestGormDashboardRepository_OpenOrders(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	orders, err := f.repo.OpenOrders(ctx, f.clock.DayRange(f.day))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Luis Vega", orders[0].ClientName)
}

func TestGormDashboardRepository_GeneralTotals(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	totals, err := f.repo.GeneralTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.Orders)
	assert.Equal(t, int64(3), totals.DistinctClients)
	assert.Equal(t, int64(3), totals.ActiveServices)
	assert.Equal(t, int64(2), totals.CompletedOrders)
	assert.Equal(t, int64(1), totals.PendingOrders)
	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(25000)))
}

func TestGormDashboardRepository_ClosingSource(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()
	period := f.clock.DayRange(f.day)

	sum, err := f.repo.SumLineItemRevenue(ctx, period)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(25000)))

	breakdown, err := f.repo.LineItemRevenueByService(ctx, period)
	require.NoError(t, err)
	require.Len(t, breakdown, 3)
	assert.Equal(t, "frenos", breakdown[0].ServiceName)
	assert.True(t, breakdown[0].Subtotal.Equal(decimal.NewFromInt(15000)))

	// outside the day nothing qualifies
	empty, err := f.repo.SumLineItemRevenue(ctx, f.clock.DayRange(f.day.AddDate(0, 0, 1)))
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}
