package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de detalle de una factura.
type InvoiceLine struct {
	ID              string
	InvoiceID       string
	LineNo          int
	ItemID          string // opcional: líneas libres sin producto de inventario
	Description     string
	HSNCode         string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountFlat    decimal.Decimal
	TaxRatePercent  decimal.Decimal
	TaxableAmount   decimal.Decimal // base gravable de la línea antes del descuento global
}
