package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/valueobject"
)

// Service represents an entry in the workshop's service catalog.
// Removal never deletes: it flips Active to false so historical line items
// keep resolving their service details.
type Service struct {
	shared.BaseEntity
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Active      bool
}

// NewService creates a new catalog service
func NewService(name, description string, unitPrice decimal.Decimal) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if valueobject.NewMoneyCRC(unitPrice).IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Service price cannot be negative")
	}

	return &Service{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		Active:      true,
	}, nil
}

// Update patches the mutable catalog fields. Price changes do not touch
// line items already attached to work orders: those snapshot the price at
// attach time.
func (s *Service) Update(name, description *string, unitPrice *decimal.Decimal) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
		}
		s.Name = trimmed
	}
	if description != nil {
		s.Description = *description
	}
	if unitPrice != nil {
		if valueobject.NewMoneyCRC(*unitPrice).IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Service price cannot be negative")
		}
		s.UnitPrice = *unitPrice
	}
	s.Touch()
	return nil
}

// Deactivate soft-removes the service from the catalog
func (s *Service) Deactivate() {
	s.Active = false
	s.Touch()
}

// Activate restores a deactivated service
func (s *Service) Activate() {
	s.Active = true
	s.Touch()
}
