package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/workshop"
	"gorm.io/gorm"
)

func mustNewOrder(t *testing.T, client string) *workshop.WorkOrder {
	t.Helper()
	order, err := workshop.NewWorkOrder(client, "", "Toyota Hilux", "SJO-123", "", workshop.PaymentPending)
	require.NoError(t, err)
	return order
}

func TestGormWorkOrderRepository_SaveLoadsItemsWithServiceNames(t *testing.T) {
	db := setupTestDB(t)
	services := NewGormServiceRepository(db)
	orders := NewGormWorkOrderRepository(db)
	ctx := context.Background()

	frenos := mustNewService(t, "frenos", 15000)
	alineado := mustNewService(t, "alineado", 7000)
	require.NoError(t, services.Save(ctx, frenos))
	require.NoError(t, services.Save(ctx, alineado))

	order := mustNewOrder(t, "Carlos Mora")
	_, err := order.AttachItem(frenos.ID, frenos.Name, frenos.UnitPrice, "")
	require.NoError(t, err)
	_, err = order.AttachItem(alineado.ID, alineado.Name, alineado.UnitPrice, "revisar")
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, order))

	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(22000)))

	names := []string{found.Items[0].ServiceName, found.Items[1].ServiceName}
	assert.Contains(t, names, "frenos")
	assert.Contains(t, names, "alineado")
}

func TestGormWorkOrderRepository_SaveSyncsRemovedItems(t *testing.T) {
	db := setupTestDB(t)
	services := NewGormServiceRepository(db)
	orders := NewGormWorkOrderRepository(db)
	ctx := context.Background()

	frenos := mustNewService(t, "frenos", 15000)
	gases := mustNewService(t, "gases", 5000)
	require.NoError(t, services.Save(ctx, frenos))
	require.NoError(t, services.Save(ctx, gases))

	order := mustNewOrder(t, "Ana Rojas")
	itemA, err := order.AttachItem(frenos.ID, frenos.Name, frenos.UnitPrice, "")
	require.NoError(t, err)
	_, err = order.AttachItem(gases.ID, gases.Name, gases.UnitPrice, "")
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, order))

	require.NoError(t, order.DetachItem(itemA.ID))
	require.NoError(t, orders.Save(ctx, order))

	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, gases.ID, found.Items[0].ServiceID)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(5000)))
}

func TestGormWorkOrderRepository_DuplicateServiceRejectedByIndex(t *testing.T) {
	db := setupTestDB(t)
	services := NewGormServiceRepository(db)
	orders := NewGormWorkOrderRepository(db)
	ctx := context.Background()

	frenos := mustNewService(t, "frenos", 15000)
	require.NoError(t, services.Save(ctx, frenos))

	order := mustNewOrder(t, "Luis Vega")
	_, err := order.AttachItem(frenos.ID, frenos.Name, frenos.UnitPrice, "")
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, order))

	// simulate the second of two racing attaches writing behind the
	// aggregate's back
	err = db.Exec(`
		INSERT INTO work_order_items (id, work_order_id, service_id, price, comment, completed, created_at, updated_at)
		VALUES (?, ?, ?, 15000, '', 0, datetime('now'), datetime('now'))
	`, uuid.NewString(), order.ID.String(), frenos.ID.String()).Error
	require.Error(t, err)
	assert.ErrorIs(t, db.Exec(`
		INSERT INTO work_order_items (id, work_order_id, service_id, price, comment, completed, created_at, updated_at)
		VALUES (?, ?, ?, 15000, '', 0, datetime('now'), datetime('now'))
	`, uuid.NewString(), order.ID.String(), frenos.ID.String()).Error, gorm.ErrDuplicatedKey)
}

func TestGormWorkOrderRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	services := NewGormServiceRepository(db)
	orders := NewGormWorkOrderRepository(db)
	ctx := context.Background()

	frenos := mustNewService(t, "frenos", 15000)
	require.NoError(t, services.Save(ctx, frenos))

	order := mustNewOrder(t, "Maria Solis")
	_, err := order.AttachItem(frenos.ID, frenos.Name, frenos.UnitPrice, "")
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, order))

	require.NoError(t, orders.Delete(ctx, order.ID))

	_, err = orders.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Table("work_order_items").Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	assert.ErrorIs(t, orders.Delete(ctx, order.ID), shared.ErrNotFound)
}

func TestGormWorkOrderRepository_FindAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	orders := NewGormWorkOrderRepository(db)
	ctx := context.Background()

	first := mustNewOrder(t, "Carlos Mora")
	second := mustNewOrder(t, "Ana Rojas")
	second.CreatedAt = second.CreatedAt.Add(time.Second)
	require.NoError(t, orders.Save(ctx, first))
	require.NoError(t, orders.Save(ctx, second))

	all, err := orders.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana Rojas", all[0].ClientName)
}
