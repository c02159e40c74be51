package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

// PaymentUseCase registra abonos y mantiene paid_amount y status de la factura.
type PaymentUseCase struct {
	txRunner    BillingTxRunner
	paymentRepo repository.PaymentRepository
	state       *appstate.State
	metrics     *metrics.Metrics
	log         *logger.Logger
	now         func() time.Time
}

// NewPaymentUseCase construye el caso de uso. metrics puede ser nil.
func NewPaymentUseCase(
	txRunner BillingTxRunner,
	paymentRepo repository.PaymentRepository,
	state *appstate.State,
	m *metrics.Metrics,
	log *logger.Logger,
) *PaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{
		txRunner:    txRunner,
		paymentRepo: paymentRepo,
		state:       state,
		metrics:     m,
		log:         log.Component("payments"),
		now:         time.Now,
	}
}

// Record aplica un pago dentro de una transacción: bloquea la factura, valida el saldo,
// guarda el pago y actualiza el acumulado y el estado (partial o paid).
func (uc *PaymentUseCase) Record(ctx context.Context, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Amount.Exponent() < -2 && !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, fmt.Errorf("%w: el monto admite máximo 2 decimales", domain.ErrInvalidInput)
	}
	now := uc.now()
	paidAt := now
	if in.PaidAt != "" {
		t, err := time.Parse(dateLayout, in.PaidAt)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de pago inválida %q", domain.ErrInvalidInput, in.PaidAt)
		}
		paidAt = t
	}

	p := &entity.Payment{
		ID:        uuid.New().String(),
		InvoiceID: in.InvoiceID,
		Amount:    in.Amount,
		Mode:      in.Mode,
		Reference: in.Reference,
		PaidAt:    paidAt,
		CreatedAt: now,
	}
	var updated entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository, _ repository.ItemRepository) error {
		inv, err := invoiceRepo.GetByIDForUpdate(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("factura %s: %w", in.InvoiceID, domain.ErrNotFound)
		}
		switch inv.Status {
		case entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft, entity.InvoiceStatusPaid:
			return fmt.Errorf("factura %s en estado %s: %w", inv.Number, inv.Status, domain.ErrInvoiceClosed)
		}
		if p.Amount.GreaterThan(inv.Outstanding()) {
			return fmt.Errorf("saldo %s, pago %s: %w", inv.Outstanding().StringFixed(2), p.Amount.StringFixed(2), domain.ErrOverpayment)
		}

		paid := inv.PaidAmount.Add(p.Amount)
		status := inv.StatusAfterPayment(paid)
		p.PartyID = inv.PartyID
		if err := paymentRepo.Create(ctx, p); err != nil {
			return err
		}
		if err := invoiceRepo.ApplyPayment(ctx, inv.ID, paid, status, now); err != nil {
			return err
		}
		updated = *inv
		updated.PaidAmount = paid
		updated.Status = status
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", in.InvoiceID).Msg("pago rechazado")
		return nil, err
	}

	uc.metrics.RecordPayment(p.Mode)
	uc.log.Info().
		Str("payment_id", p.ID).
		Str("invoice_id", p.InvoiceID).
		Str("amount", p.Amount.StringFixed(2)).
		Str("status", updated.Status).
		Msg("pago registrado")

	resp := toPaymentResponse(p)
	outstanding := updated.Outstanding()
	resp.InvoiceStatus = updated.Status
	resp.InvoiceOutstanding = &outstanding
	return resp, nil
}

// List lista pagos, opcionalmente de una factura.
func (uc *PaymentUseCase) List(ctx context.Context, invoiceID string, limit, offset int) ([]*dto.PaymentResponse, error) {
	limit, offset = uc.state.Page(limit, offset)
	list, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{InvoiceID: invoiceID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		PartyID:   p.PartyID,
		Amount:    p.Amount,
		Mode:      p.Mode,
		Reference: p.Reference,
		PaidAt:    p.PaidAt.Format(dateLayout),
	}
}
