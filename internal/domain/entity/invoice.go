package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura. Coinciden exactamente con los valores del backend.
const (
	InvoiceTypeSale     = "sale"
	InvoiceTypePurchase = "purchase"
)

// Estados de la factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusPending   = "pending"   // emitida, sin pagos
	InvoiceStatusPartial   = "partial"   // con abonos, saldo pendiente
	InvoiceStatusPaid      = "paid"      // saldada
	InvoiceStatusUnpaid    = "unpaid"    // alias usado por algunos servicios
	InvoiceStatusOverdue   = "overdue"   // vencida con saldo
	InvoiceStatusCancelled = "cancelled" // anulada
)

// Invoice representa la cabecera de una factura con su desglose GST.
// CGST/SGST e IGST son excluyentes: solo una familia es distinta de cero.
type Invoice struct {
	ID            string
	Number        string
	InvoiceType   string // sale | purchase
	Status        string
	PartyID       string
	Date          time.Time
	DueDate       *time.Time
	IsInterState  bool
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	TotalAmount   decimal.Decimal // total a pagar, redondeado a 2 decimales
	PaidAmount    decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Outstanding devuelve el saldo pendiente (nunca negativo).
func (i Invoice) Outstanding() decimal.Decimal {
	out := i.TotalAmount.Sub(i.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// StatusAfterPayment devuelve el estado que corresponde a un monto pagado acumulado.
func (i Invoice) StatusAfterPayment(paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(i.TotalAmount):
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPending
	}
}
