package workshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of a work order
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusDelivered  Status = "delivered"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsRevenueEligible reports whether orders in this status count as revenue
func (s Status) IsRevenueEligible() bool {
	return s == StatusCompleted || s == StatusDelivered
}

// IsOpen reports whether the order still has pending work
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// RevenueStatuses returns the statuses whose orders count toward revenue
func RevenueStatuses() []Status {
	return []Status{StatusCompleted, StatusDelivered}
}

// OpenStatuses returns the statuses of orders with pending work
func OpenStatuses() []Status {
	return []Status{StatusPending, StatusInProgress}
}

// PaymentMethod represents how a work order is (or will be) paid
type PaymentMethod string

const (
	PaymentPending  PaymentMethod = "pending"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
)

// IsValid checks if the method is a valid PaymentMethod
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentPending, PaymentTransfer, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (p PaymentMethod) String() string {
	return string(p)
}

// AllPaymentMethods returns the fixed payment method enumeration, in the
// order report breakdowns present them
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentPending, PaymentTransfer, PaymentCard, PaymentCash}
}

// LineItem is one service instance attached to a work order. Price is a
// snapshot taken at attach time: later catalog price changes never affect it.
type LineItem struct {
	ID          uuid.UUID
	WorkOrderID uuid.UUID
	ServiceID   uuid.UUID
	ServiceName string // resolved from the catalog on load, not owned here
	Price       decimal.Decimal
	Comment     string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceMoney returns the snapshot price as Money
func (i *LineItem) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyCRC(i.Price)
}

// ResolvePrice applies the snapshot rule: an explicit override wins,
// otherwise the catalog price at attach time is captured.
func ResolvePrice(override *decimal.Decimal, catalogPrice decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return catalogPrice
}

// WorkOrder is the aggregate root for a customer job: vehicle info, an
// ordered set of service line items, and a derived total.
type WorkOrder struct {
	shared.BaseEntity
	ClientName    string
	Phone         string
	Vehicle       string
	Plate         string
	Notes         string
	Status        Status
	PaymentMethod PaymentMethod
	Total         decimal.Decimal
	Items         []LineItem
}

// NewWorkOrder creates a new work order in pending state
func NewWorkOrder(clientName, phone, vehicle, plate, notes string, paymentMethod PaymentMethod) (*WorkOrder, error) {
	if paymentMethod == "" {
		paymentMethod = PaymentPending
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+paymentMethod.String())
	}

	return &WorkOrder{
		BaseEntity:    shared.NewBaseEntity(),
		ClientName:    clientName,
		Phone:         phone,
		Vehicle:       vehicle,
		Plate:         plate,
		Notes:         notes,
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		Total:         decimal.Zero,
		Items:         make([]LineItem, 0),
	}, nil
}

// AttachItem adds a service line with its snapshot price. A given service
// can be attached at most once per order.
func (w *WorkOrder) AttachItem(serviceID uuid.UUID, serviceName string, price decimal.Decimal, comment string) (*LineItem, error) {
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if valueobject.NewMoneyCRC(price).IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Line item price cannot be negative")
	}
	if w.hasService(serviceID) {
		return nil, shared.NewDomainError("SERVICE_ALREADY_ATTACHED", "Service is already attached to this work order")
	}

	now := time.Now()
	item := LineItem{
		ID:          uuid.New(),
		WorkOrderID: w.ID,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Price:       price,
		Comment:     comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.Items = append(w.Items, item)
	w.recomputeTotal()
	return &w.Items[len(w.Items)-1], nil
}

// DetachItem removes a line item by ID and recomputes the total
func (w *WorkOrder) DetachItem(lineItemID uuid.UUID) error {
	for i := range w.Items {
		if w.Items[i].ID == lineItemID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.recomputeTotal()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Line item not found on this work order")
}

// ClearItems removes all line items and resets the total
func (w *WorkOrder) ClearItems() {
	w.Items = w.Items[:0]
	w.recomputeTotal()
}

// UpdateItemComment changes a line item's comment. The total is untouched.
func (w *WorkOrder) UpdateItemComment(lineItemID uuid.UUID, comment string) (*LineItem, error) {
	item := w.findItem(lineItemID)
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Line item not found on this work order")
	}
	item.Comment = comment
	item.UpdatedAt = time.Now()
	w.Touch()
	return item, nil
}

// SetItemCompleted flips a line item's completed flag
func (w *WorkOrder) SetItemCompleted(lineItemID uuid.UUID, completed bool) (*LineItem, error) {
	item := w.findItem(lineItemID)
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Line item not found on this work order")
	}
	item.Completed = completed
	item.UpdatedAt = time.Now()
	w.Touch()
	return item, nil
}

// UpdateInfo patches the order's own fields. Line items and the total are
// never modified here.
func (w *WorkOrder) UpdateInfo(clientName, phone, vehicle, plate, notes *string, status *Status, paymentMethod *PaymentMethod) error {
	if status != nil && !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown status: "+status.String())
	}
	if paymentMethod != nil && !paymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+paymentMethod.String())
	}

	if clientName != nil {
		w.ClientName = *clientName
	}
	if phone != nil {
		w.Phone = *phone
	}
	if vehicle != nil {
		w.Vehicle = *vehicle
	}
	if plate != nil {
		w.Plate = *plate
	}
	if notes != nil {
		w.Notes = *notes
	}
	if status != nil {
		w.Status = *status
	}
	if paymentMethod != nil {
		w.PaymentMethod = *paymentMethod
	}
	w.Touch()
	return nil
}

// TotalMoney returns the derived total as Money
func (w *WorkOrder) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyCRC(w.Total)
}

// recomputeTotal keeps the invariant total == sum of line item prices.
// Every item mutation funnels through here before the aggregate is saved.
func (w *WorkOrder) recomputeTotal() {
	total := valueobject.ZeroCRC()
	for i := range w.Items {
		// line prices are all CRC, Add cannot mismatch
		total, _ = total.Add(w.Items[i].PriceMoney())
	}
	w.Total = total.Round().Amount()
	w.Touch()
}

func (w *WorkOrder) hasService(serviceID uuid.UUID) bool {
	for i := range w.Items {
		if w.Items[i].ServiceID == serviceID {
			return true
		}
	}
	return false
}

func (w *WorkOrder) findItem(lineItemID uuid.UUID) *LineItem {
	for i := range w.Items {
		if w.Items[i].ID == lineItemID {
			return &w.Items[i]
		}
	}
	return nil
}
