package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

// InvoiceFilter filtros de listado; los campos vacíos no filtran.
type InvoiceFilter struct {
	InvoiceType string
	Status      string
	PartyID     string
	Limit       int
	Offset      int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (registro de pagos).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	// ApplyPayment actualiza el acumulado pagado y el estado.
	ApplyPayment(ctx context.Context, id string, paid decimal.Decimal, status string, at time.Time) error
	// NextNumber devuelve el siguiente número correlativo para el prefijo dado.
	NextNumber(ctx context.Context, prefix string) (string, error)
}
