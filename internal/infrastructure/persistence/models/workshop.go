package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/workshop"
)

// WorkOrderModel is the persistence model for work orders
type WorkOrderModel struct {
	BaseModel
	ClientName    string               `gorm:"type:varchar(255);not null"`
	Phone         string               `gorm:"type:varchar(50)"`
	Vehicle       string               `gorm:"type:varchar(255);not null"`
	Plate         string               `gorm:"type:varchar(50)"`
	Notes         string               `gorm:"type:text"`
	Status        string               `gorm:"type:varchar(20);not null;index"`
	PaymentMethod string               `gorm:"type:varchar(20);not null"`
	Total         decimal.Decimal      `gorm:"type:decimal(10,2);not null"`
	Items         []WorkOrderItemModel `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// WorkOrderItemModel is the persistence model for work order line items.
// The unique index on (work_order_id, service_id) is what rejects the
// second of two racing attaches of the same service.
type WorkOrderItemModel struct {
	BaseModel
	WorkOrderID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_service"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_service"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Comment     string          `gorm:"type:text"`
	Completed   bool            `gorm:"not null;default:false"`
	Service     *ServiceModel   `gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name
func (WorkOrderItemModel) TableName() string {
	return "work_order_items"
}

// ToDomain converts the model to a domain WorkOrder with its items
func (m *WorkOrderModel) ToDomain() *workshop.WorkOrder {
	items := make([]workshop.LineItem, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &workshop.WorkOrder{
		BaseEntity:    m.BaseModel.ToDomain(),
		ClientName:    m.ClientName,
		Phone:         m.Phone,
		Vehicle:       m.Vehicle,
		Plate:         m.Plate,
		Notes:         m.Notes,
		Status:        workshop.Status(m.Status),
		PaymentMethod: workshop.PaymentMethod(m.PaymentMethod),
		Total:         m.Total,
		Items:         items,
	}
}

// FromDomain populates the model from a domain WorkOrder
func (m *WorkOrderModel) FromDomain(order *workshop.WorkOrder) {
	m.FromDomainBaseEntity(order.BaseEntity)
	m.ClientName = order.ClientName
	m.Phone = order.Phone
	m.Vehicle = order.Vehicle
	m.Plate = order.Plate
	m.Notes = order.Notes
	m.Status = order.Status.String()
	m.PaymentMethod = order.PaymentMethod.String()
	m.Total = order.Total

	m.Items = make([]WorkOrderItemModel, len(order.Items))
	for i := range order.Items {
		m.Items[i].FromDomain(&order.Items[i])
	}
}

// ToDomain converts the item model to a domain LineItem. The service name
// comes from the preloaded Service when present.
func (m *WorkOrderItemModel) ToDomain() workshop.LineItem {
	item := workshop.LineItem{
		ID:          m.ID,
		WorkOrderID: m.WorkOrderID,
		ServiceID:   m.ServiceID,
		Price:       m.Price,
		Comment:     m.Comment,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Service != nil {
		item.ServiceName = m.Service.Name
	}
	return item
}

// FromDomain populates the item model from a domain LineItem
func (m *WorkOrderItemModel) FromDomain(item *workshop.LineItem) {
	m.ID = item.ID
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
	m.WorkOrderID = item.WorkOrderID
	m.ServiceID = item.ServiceID
	m.Price = item.Price
	m.Comment = item.Comment
	m.Completed = item.Completed
}
