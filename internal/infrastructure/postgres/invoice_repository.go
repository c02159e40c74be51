package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	id, number, invoice_type, status, party_id, date, due_date, is_inter_state,
	subtotal, total_discount, taxable_amount, cgst, sgst, igst, total_amount, paid_amount,
	notes, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	var due *time.Time
	if inv.DueDate != nil {
		d := dateOnly(*inv.DueDate)
		due = &d
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.InvoiceType, inv.Status, inv.PartyID, dateOnly(inv.Date), due, inv.IsInterState,
		inv.Subtotal, inv.TotalDiscount, inv.TaxableAmount, inv.CGST, inv.SGST, inv.IGST,
		inv.TotalAmount, inv.PaidAmount, nullIfEmpty(inv.Notes), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("invoice party: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de detalle.
func (r *InvoiceRepo) CreateLine(ctx context.Context, l *entity.InvoiceLine) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_lines (id, invoice_id, line_no, item_id, description, hsn_code, quantity, unit_price,
		                           discount_percent, discount_flat, tax_rate_percent, taxable_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.InvoiceID, l.LineNo, nullIfEmpty(l.ItemID), l.Description, nullIfEmpty(l.HSNCode),
		l.Quantity, l.UnitPrice, l.DiscountPercent, l.DiscountFlat, l.TaxRatePercent, l.TaxableAmount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("invoice line item: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero con bloqueo de fila (usar dentro de una tx).
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) get(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetLines obtiene las líneas de una factura en su orden original.
func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, line_no, item_id, description, hsn_code, quantity, unit_price,
		       discount_percent, discount_flat, tax_rate_percent, taxable_amount
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		var itemID, hsn *string
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.LineNo, &itemID, &l.Description, &hsn, &l.Quantity, &l.UnitPrice,
			&l.DiscountPercent, &l.DiscountFlat, &l.TaxRatePercent, &l.TaxableAmount,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		l.ItemID = derefStr(itemID)
		l.HSNCode = derefStr(hsn)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List lista facturas por fecha descendente con filtros opcionales (limit 0 = todas).
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR invoice_type = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR party_id::TEXT = $3)
		ORDER BY date DESC, number DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.InvoiceType, f.Status, f.PartyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ApplyPayment actualiza paid_amount y status de la factura.
func (r *InvoiceRepo) ApplyPayment(ctx context.Context, id string, paid decimal.Decimal, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET paid_amount = $2, status = $3, updated_at = $4 WHERE id = $1`,
		id, paid, status, at,
	)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextNumber devuelve PREFIX-000001, PREFIX-000002, ... usando el contador por prefijo.
// El contador nunca queda por debajo del mayor sufijo numérico ya usado, así que los números
// asignados a mano no se repiten. La fila del contador queda bloqueada hasta el fin de la tx.
func (r *InvoiceRepo) NextNumber(ctx context.Context, prefix string) (string, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO invoice_sequences (prefix, last_value)
		VALUES ($1, COALESCE((
			SELECT MAX(CAST(substring(number FROM '-([0-9]{1,18})$') AS BIGINT))
			FROM invoices
			WHERE number ~ ('^' || $1 || '-[0-9]{1,18}$')
		), 0) + 1)
		ON CONFLICT (prefix) DO UPDATE
			SET last_value = GREATEST(invoice_sequences.last_value + 1, EXCLUDED.last_value)
		RETURNING last_value`, prefix,
	).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var notes *string
	if err := row.Scan(
		&inv.ID, &inv.Number, &inv.InvoiceType, &inv.Status, &inv.PartyID, &inv.Date, &inv.DueDate, &inv.IsInterState,
		&inv.Subtotal, &inv.TotalDiscount, &inv.TaxableAmount, &inv.CGST, &inv.SGST, &inv.IGST,
		&inv.TotalAmount, &inv.PaidAmount, &notes, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.Notes = derefStr(notes)
	return &inv, nil
}
