// Package gst calcula los totales de una factura con impuesto GST (India).
//
// El cálculo es puro y síncrono: no hace I/O, no registra logs y puede
// invocarse concurrentemente sin coordinación.
package gst

import "github.com/shopspring/decimal"

// LineItem es una línea de entrada del cálculo.
// DiscountPercent y DiscountFlat son excluyentes; un valor cero significa "modo no usado".
type LineItem struct {
	Description     string
	HSNCode         string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal // [0, 100]
	DiscountFlat    decimal.Decimal // >= 0, se limita al monto extendido de la línea
	TaxRatePercent  decimal.Decimal // 0, 5, 12, 18, 28
}

// InvoiceDiscount es el descuento global opcional, aplicado después del subtotal de líneas.
type InvoiceDiscount struct {
	Percent decimal.Decimal
	Flat    decimal.Decimal
}

// InvoiceContext agrupa todo lo necesario para calcular los totales.
type InvoiceContext struct {
	IsInterState    bool
	LineItems       []LineItem
	InvoiceDiscount InvoiceDiscount
}

// LineTotals detalle calculado por línea (en el mismo orden de entrada).
type LineTotals struct {
	Extended       decimal.Decimal // cantidad * precio unitario
	Discount       decimal.Decimal
	Taxable        decimal.Decimal // Extended - Discount, nunca negativo
	TaxRatePercent decimal.Decimal
}

// RateBucket agrupa las líneas con la misma tarifa.
// Discount es la porción del descuento global asignada a la tarifa.
type RateBucket struct {
	RatePercent decimal.Decimal
	Discount    decimal.Decimal
	Taxable     decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
}

// InvoiceTotals es el resultado inmutable del cálculo.
// Solo GrandTotal se redondea (half-up a 2 decimales); el resto conserva precisión completa.
type InvoiceTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	GrandTotal    decimal.Decimal
	Lines         []LineTotals
	Buckets       []RateBucket // ordenados por tarifa ascendente
}

// TotalTax suma las tres componentes del impuesto.
func (t InvoiceTotals) TotalTax() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}
