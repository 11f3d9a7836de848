package catalog

import "github.com/shopspring/decimal"

// SeedEntry describes one default catalog service
type SeedEntry struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
}

// DefaultServices is the starter catalog seeded into an empty database
func DefaultServices() []SeedEntry {
	return []SeedEntry{
		{Name: "frenos", Description: "Revisión y reparación del sistema de frenos", UnitPrice: decimal.NewFromInt(15000)},
		{Name: "cambio_rotula", Description: "Cambio de rótulas de dirección", UnitPrice: decimal.NewFromInt(8000)},
		{Name: "suspension", Description: "Revisión y reparación de suspensión", UnitPrice: decimal.NewFromInt(12000)},
		{Name: "gases", Description: "Revisión de gases de escape", UnitPrice: decimal.NewFromInt(5000)},
		{Name: "cambio_compensadores", Description: "Cambio de compensadores", UnitPrice: decimal.NewFromInt(6000)},
		{Name: "catalizador", Description: "Revisión y cambio de catalizador", UnitPrice: decimal.NewFromInt(25000)},
		{Name: "silenciador", Description: "Reparación o cambio de silenciador", UnitPrice: decimal.NewFromInt(10000)},
		{Name: "regulacion", Description: "Regulación del motor", UnitPrice: decimal.NewFromInt(8000)},
		{Name: "alineado", Description: "Alineación de llantas", UnitPrice: decimal.NewFromInt(7000)},
		{Name: "tramado", Description: "Servicio de tramado", UnitPrice: decimal.NewFromInt(4000)},
		{Name: "luces", Description: "Revisión del sistema de luces", UnitPrice: decimal.NewFromInt(3000)},
		{Name: "llantas", Description: "Revisión y cambio de llantas", UnitPrice: decimal.NewFromInt(20000)},
		{Name: "servicio_scanner", Description: "Diagnóstico con scanner automotriz", UnitPrice: decimal.NewFromInt(15000)},
		{Name: "soldadura", Description: "Trabajos de soldadura automotriz", UnitPrice: decimal.NewFromInt(12000)},
	}
}
