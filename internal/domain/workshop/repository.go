package workshop

import (
	"context"

	"github.com/google/uuid"
)

// WorkOrderRepository defines persistence operations for work orders.
// Save persists the order together with its line items and derived total in
// a single transaction, so the total invariant holds at every commit point.
// The (work_order_id, service_id) uniqueness is backed by a unique index:
// concurrent attaches of the same service race safely, with the store
// rejecting the second writer.
type WorkOrderRepository interface {
	// FindByID loads the order with its line items and resolved service names
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	// FindAll returns all orders with items, newest first
	FindAll(ctx context.Context) ([]WorkOrder, error)
	Save(ctx context.Context, order *WorkOrder) error
	// Delete removes the order; line items are cascade-deleted
	Delete(ctx context.Context, id uuid.UUID) error
}
