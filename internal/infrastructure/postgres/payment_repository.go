package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, invoice_id, party_id, amount, mode, reference, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.InvoiceID, p.PartyID, p.Amount, p.Mode, nullIfEmpty(p.Reference), p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("payment invoice: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// List lista pagos por fecha descendente, opcionalmente de una factura (limit 0 = todos).
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT id, invoice_id, party_id, amount, mode, reference, paid_at, created_at
		FROM payments
		WHERE ($1 = '' OR invoice_id::TEXT = $1)
		ORDER BY paid_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.InvoiceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var ref *string
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.PartyID, &p.Amount, &p.Mode, &ref, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Reference = derefStr(ref)
		list = append(list, &p)
	}
	return list, rows.Err()
}
