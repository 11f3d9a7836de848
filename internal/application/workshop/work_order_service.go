package workshop

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/catalog"
	"github.com/taller/backend/internal/domain/workshop"
)

// WorkOrderService provides application-level operations over work orders
type WorkOrderService struct {
	orders   workshop.WorkOrderRepository
	services catalog.ServiceRepository
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(orders workshop.WorkOrderRepository, services catalog.ServiceRepository) *WorkOrderService {
	return &WorkOrderService{orders: orders, services: services}
}

// LineItemInput describes one service to attach. Price, when set, overrides
// the catalog price; either way the resolved value is captured as a snapshot.
type LineItemInput struct {
	ServiceID uuid.UUID        `json:"service_id" binding:"required"`
	Price     *decimal.Decimal `json:"price"`
	Comment   string           `json:"comment"`
}

// CreateWorkOrderRequest represents a request to open a work order
type CreateWorkOrderRequest struct {
	ClientName    string          `json:"client_name" binding:"required"`
	Phone         string          `json:"phone"`
	Vehicle       string          `json:"vehicle" binding:"required"`
	Plate         string          `json:"plate"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"payment_method"`
	Items         []LineItemInput `json:"items"`
}

// UpdateWorkOrderRequest represents a partial update to a work order's own
// fields. Line items are managed through the attach/detach operations.
type UpdateWorkOrderRequest struct {
	ClientName    *string `json:"client_name"`
	Phone         *string `json:"phone"`
	Vehicle       *string `json:"vehicle"`
	Plate         *string `json:"plate"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
	PaymentMethod *string `json:"payment_method"`
}

// UpdateLineItemCommentRequest carries a new comment for one line item
type UpdateLineItemCommentRequest struct {
	Comment string `json:"comment"`
}

// CompleteLineItemRequest flips a line item's completed flag
type CompleteLineItemRequest struct {
	Completed bool `json:"completed"`
}

// ReplaceServicesRequest swaps the full set of line items on an order
type ReplaceServicesRequest struct {
	Items []LineItemInput `json:"items" binding:"required"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ServiceID   uuid.UUID       `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
	Comment     string          `json:"comment,omitempty"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID            uuid.UUID          `json:"id"`
	ClientName    string             `json:"client_name"`
	Phone         string             `json:"phone,omitempty"`
	Vehicle       string             `json:"vehicle"`
	Plate         string             `json:"plate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Items         []LineItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Create opens a work order, optionally attaching initial services. The
// order and its items are persisted in one transaction.
func (s *WorkOrderService) Create(ctx context.Context, req CreateWorkOrderRequest) (*WorkOrderResponse, error) {
	order, err := workshop.NewWorkOrder(
		req.ClientName, req.Phone, req.Vehicle, req.Plate, req.Notes,
		workshop.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		if err := s.attach(ctx, order, input); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// Get returns one work order with its line items
func (s *WorkOrderService) Get(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// List returns all work orders with their items, newest first
func (s *WorkOrderService) List(ctx context.Context) ([]WorkOrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WorkOrderResponse, len(orders))
	for i := range orders {
		out[i] = *toWorkOrderResponse(&orders[i])
	}
	return out, nil
}

// Update patches a work order's own fields
func (s *WorkOrderService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkOrderRequest) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var status *workshop.Status
	if req.Status != nil {
		v := workshop.Status(*req.Status)
		status = &v
	}
	var method *workshop.PaymentMethod
	if req.PaymentMethod != nil {
		v := workshop.PaymentMethod(*req.PaymentMethod)
		method = &v
	}

	if err := order.UpdateInfo(req.ClientName, req.Phone, req.Vehicle, req.Plate, req.Notes, status, method); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// Delete removes a work order and its line items
func (s *WorkOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// AttachService adds one service to an order with the snapshot price rule:
// an explicit price wins, otherwise the current catalog price is captured.
func (s *WorkOrderService) AttachService(ctx context.Context, orderID uuid.UUID, input LineItemInput) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, order, input); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// DetachService removes one line item and recomputes the total
func (s *WorkOrderService) DetachService(ctx context.Context, orderID, lineItemID uuid.UUID) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.DetachItem(lineItemID); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// UpdateLineItemComment changes one line item's comment without touching
// its price or the order total
func (s *WorkOrderService) UpdateLineItemComment(ctx context.Context, orderID, lineItemID uuid.UUID, req UpdateLineItemCommentRequest) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := order.UpdateItemComment(lineItemID, req.Comment); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// CompleteLineItem flips one line item's completed flag
func (s *WorkOrderService) CompleteLineItem(ctx context.Context, orderID, lineItemID uuid.UUID, req CompleteLineItemRequest) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := order.SetItemCompleted(lineItemID, req.Completed); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// ReplaceAllServices swaps the order's full line item set. The whole swap
// commits or rolls back as one unit through the aggregate save.
func (s *WorkOrderService) ReplaceAllServices(ctx context.Context, orderID uuid.UUID, req ReplaceServicesRequest) (*WorkOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.ClearItems()
	for _, input := range req.Items {
		if err := s.attach(ctx, order, input); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

func (s *WorkOrderService) attach(ctx context.Context, order *workshop.WorkOrder, input LineItemInput) error {
	svc, err := s.services.FindByID(ctx, input.ServiceID)
	if err != nil {
		return err
	}
	price := workshop.ResolvePrice(input.Price, svc.UnitPrice)
	_, err = order.AttachItem(svc.ID, svc.Name, price, input.Comment)
	return err
}

func toWorkOrderResponse(order *workshop.WorkOrder) *WorkOrderResponse {
	items := make([]LineItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = LineItemResponse{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			Price:       item.Price,
			Comment:     item.Comment,
			Completed:   item.Completed,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}
	return &WorkOrderResponse{
		ID:            order.ID,
		ClientName:    order.ClientName,
		Phone:         order.Phone,
		Vehicle:       order.Vehicle,
		Plate:         order.Plate,
		Notes:         order.Notes,
		Status:        order.Status.String(),
		PaymentMethod: order.PaymentMethod.String(),
		Total:         order.Total,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
