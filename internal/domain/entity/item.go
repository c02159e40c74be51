package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto o servicio del inventario.
// ReorderThreshold es opcional: nil significa "sin umbral propio" y se usa el umbral por defecto.
type Item struct {
	ID               string
	SKU              string
	Name             string
	HSNCode          string // código HSN/SAC para GST
	Unit             string
	SalePrice        decimal.Decimal
	PurchasePrice    decimal.Decimal
	TaxRatePercent   decimal.Decimal // 0, 5, 12, 18, 28
	CurrentStock     decimal.Decimal
	ReorderThreshold *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si el stock está en o por debajo del umbral propio o, si no lo tiene, de defaultThreshold.
// Un umbral propio en cero se respeta.
func (i Item) IsLowStock(defaultThreshold decimal.Decimal) bool {
	limit := defaultThreshold
	if i.ReorderThreshold != nil {
		limit = *i.ReorderThreshold
	}
	return i.CurrentStock.LessThanOrEqual(limit)
}
