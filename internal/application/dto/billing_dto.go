package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea de factura. item_id es opcional (líneas libres).
// Si hay item_id y faltan precio, tarifa, HSN o descripción se toman del ítem.
type LineItemRequest struct {
	ItemID          string           `json:"item_id,omitempty" validate:"omitempty,uuid"`
	Description     string           `json:"description,omitempty" validate:"max=500"`
	HSNCode         string           `json:"hsn_code,omitempty" validate:"omitempty,max=10"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DiscountFlat    decimal.Decimal  `json:"discount_flat"`
	TaxRatePercent  *decimal.Decimal `json:"tax_rate_percent,omitempty"`
}

// CalculateInvoiceRequest body para POST /api/invoices/calculate.
// El régimen se decide por is_inter_state; si no viene, por party_state_code; si no, por el tercero guardado.
type CalculateInvoiceRequest struct {
	InvoiceType     string            `json:"invoice_type,omitempty" validate:"omitempty,oneof=sale purchase"` // vacío = sale
	PartyID         string            `json:"party_id,omitempty" validate:"omitempty,uuid"`
	PartyStateCode  string            `json:"party_state_code,omitempty" validate:"omitempty,len=2,numeric"`
	IsInterState    *bool             `json:"is_inter_state,omitempty"`
	LineItems       []LineItemRequest `json:"line_items" validate:"dive"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountFlat    decimal.Decimal   `json:"discount_flat"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	Number          string            `json:"number,omitempty" validate:"omitempty,max=40"` // vacío = correlativo automático
	InvoiceType     string            `json:"invoice_type" validate:"required,oneof=sale purchase"`
	PartyID         string            `json:"party_id" validate:"required,uuid"`
	Date            string            `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate         string            `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LineItems       []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountFlat    decimal.Decimal   `json:"discount_flat"`
	Notes           string            `json:"notes,omitempty" validate:"max=1000"`
}

// InvoiceListRequest filtros de GET /api/invoices.
type InvoiceListRequest struct {
	InvoiceType string `query:"invoice_type" validate:"omitempty,oneof=sale purchase"`
	Status      string `query:"status" validate:"omitempty,max=20"`
	PartyID     string `query:"party_id" validate:"omitempty,uuid"`
	Limit       int    `query:"limit" validate:"min=0,max=100"`
	Offset      int    `query:"offset" validate:"min=0"`
}

// LineTotalsResponse detalle calculado de una línea.
type LineTotalsResponse struct {
	LineNo         int             `json:"line_no"`
	Description    string          `json:"description,omitempty"`
	HSNCode        string          `json:"hsn_code,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	Extended       decimal.Decimal `json:"extended"`
	Discount       decimal.Decimal `json:"discount"`
	Taxable        decimal.Decimal `json:"taxable"`
}

// TaxBreakupResponse desglose por tarifa (descuento global ya prorrateado).
type TaxBreakupResponse struct {
	RatePercent decimal.Decimal `json:"rate_percent"`
	Discount    decimal.Decimal `json:"discount"`
	Taxable     decimal.Decimal `json:"taxable"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
}

// InvoiceTotalsResponse resultado del cálculo. Solo grand_total va redondeado a 2 decimales.
type InvoiceTotalsResponse struct {
	IsInterState        bool                 `json:"is_inter_state"`
	Subtotal            decimal.Decimal      `json:"subtotal"`
	TotalDiscount       decimal.Decimal      `json:"total_discount"`
	TaxableAmount       decimal.Decimal      `json:"taxable_amount"`
	CGST                decimal.Decimal      `json:"cgst"`
	SGST                decimal.Decimal      `json:"sgst"`
	IGST                decimal.Decimal      `json:"igst"`
	TotalTax            decimal.Decimal      `json:"total_tax"`
	GrandTotal          decimal.Decimal      `json:"grand_total"`
	GrandTotalFormatted string               `json:"grand_total_formatted"`
	Lines               []LineTotalsResponse `json:"lines"`
	TaxBreakup          []TaxBreakupResponse `json:"tax_breakup"`
}

// InvoiceResponse factura con totales y líneas.
type InvoiceResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	InvoiceType   string                 `json:"invoice_type"`
	Status        string                 `json:"status"`
	PartyID       string                 `json:"party_id"`
	Date          string                 `json:"date"`
	DueDate       string                 `json:"due_date,omitempty"`
	IsInterState  bool                   `json:"is_inter_state"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	TotalDiscount decimal.Decimal        `json:"total_discount"`
	TaxableAmount decimal.Decimal        `json:"taxable_amount"`
	CGST          decimal.Decimal        `json:"cgst"`
	SGST          decimal.Decimal        `json:"sgst"`
	IGST          decimal.Decimal        `json:"igst"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	Outstanding   decimal.Decimal        `json:"outstanding"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []InvoiceLineResponse  `json:"lines,omitempty"`
	Totals        *InvoiceTotalsResponse `json:"totals,omitempty"`
}

// InvoiceLineResponse línea persistida.
type InvoiceLineResponse struct {
	ID              string          `json:"id"`
	LineNo          int             `json:"line_no"`
	ItemID          string          `json:"item_id,omitempty"`
	Description     string          `json:"description"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountFlat    decimal.Decimal `json:"discount_flat"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
}

// RecordPaymentRequest body para POST /api/payments.
type RecordPaymentRequest struct {
	InvoiceID string          `json:"invoice_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode" validate:"required,oneof=cash bank upi cheque card"`
	Reference string          `json:"reference,omitempty" validate:"max=100"`
	PaidAt    string          `json:"paid_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PaymentResponse pago registrado con el estado resultante de la factura.
type PaymentResponse struct {
	ID                 string           `json:"id"`
	InvoiceID          string           `json:"invoice_id"`
	PartyID            string           `json:"party_id"`
	Amount             decimal.Decimal  `json:"amount"`
	Mode               string           `json:"mode"`
	Reference          string           `json:"reference,omitempty"`
	PaidAt             string           `json:"paid_at"`
	InvoiceStatus      string           `json:"invoice_status,omitempty"`
	InvoiceOutstanding *decimal.Decimal `json:"invoice_outstanding,omitempty"`
}
