package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados.
const (
	PaymentModeCash   = "cash"
	PaymentModeBank   = "bank"
	PaymentModeUPI    = "upi"
	PaymentModeCheque = "cheque"
	PaymentModeCard   = "card"
)

// Payment representa un abono aplicado a una factura.
type Payment struct {
	ID        string
	InvoiceID string
	PartyID   string
	Amount    decimal.Decimal
	Mode      string
	Reference string
	PaidAt    time.Time
	CreatedAt time.Time
}
