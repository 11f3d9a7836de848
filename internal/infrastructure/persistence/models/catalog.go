package models

import (
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/catalog"
)

// ServiceModel is the persistence model for catalog services
type ServiceModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the model to a domain Service
func (m *ServiceModel) ToDomain() *catalog.Service {
	return &catalog.Service{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Active:      m.Active,
	}
}

// FromDomain populates the model from a domain Service
func (m *ServiceModel) FromDomain(s *catalog.Service) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Description = s.Description
	m.UnitPrice = s.UnitPrice
	m.Active = s.Active
}
