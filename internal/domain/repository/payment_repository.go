package repository

import (
	"context"

	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

// PaymentFilter filtros de listado de pagos.
type PaymentFilter struct {
	InvoiceID string
	Limit     int
	Offset    int
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	List(ctx context.Context, f PaymentFilter) ([]*entity.Payment, error)
}
