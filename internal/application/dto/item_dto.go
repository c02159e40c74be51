package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU              string           `json:"sku" validate:"required,max=50"`
	Name             string           `json:"name" validate:"required,max=200"`
	HSNCode          string           `json:"hsn_code,omitempty" validate:"omitempty,numeric,min=4,max=8"`
	Unit             string           `json:"unit,omitempty" validate:"max=10"`
	SalePrice        decimal.Decimal  `json:"sale_price"`
	PurchasePrice    decimal.Decimal  `json:"purchase_price"`
	TaxRatePercent   decimal.Decimal  `json:"tax_rate_percent"`
	CurrentStock     decimal.Decimal  `json:"current_stock"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold,omitempty"`
}

// ItemResponse ítem en respuestas.
type ItemResponse struct {
	ID               string           `json:"id"`
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	HSNCode          string           `json:"hsn_code,omitempty"`
	Unit             string           `json:"unit"`
	SalePrice        decimal.Decimal  `json:"sale_price"`
	PurchasePrice    decimal.Decimal  `json:"purchase_price"`
	TaxRatePercent   decimal.Decimal  `json:"tax_rate_percent"`
	CurrentStock     decimal.Decimal  `json:"current_stock"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold,omitempty"`
	LowStock         bool             `json:"low_stock"`
}
