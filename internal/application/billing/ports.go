package billing

import (
	"context"

	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Si fn devuelve error se hace rollback de todo: cabecera, líneas, pagos y stock.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
