package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, sku, name, hsn_code, unit, sale_price, purchase_price, tax_rate_percent, current_stock, reorder_threshold, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem. SKU repetido devuelve ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SKU, it.Name, nullIfEmpty(it.HSNCode), it.Unit,
		it.SalePrice, it.PurchasePrice, it.TaxRatePercent, it.CurrentStock, it.ReorderThreshold,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByIDForUpdate igual que GetByID con SELECT ... FOR UPDATE (usar dentro de una tx).
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// UpdateStock actualiza stock y costo de compra.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, stock, purchasePrice decimal.Decimal, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE items SET current_stock = $2, purchase_price = $3, updated_at = $4 WHERE id = $1`,
		id, stock, purchasePrice, at,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetBySKU obtiene un ítem por SKU; nil si no existe.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by sku: %w", err)
	}
	return it, nil
}

// List lista ítems por nombre con paginación (limit 0 = todos).
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	l, o := pageArgs(limit, offset)
	return r.list(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name, id LIMIT $1 OFFSET $2`, l, o)
}

// ListLowStock aplica la misma regla que el tablero: stock <= umbral propio o, si no hay, el por defecto.
func (r *ItemRepo) ListLowStock(ctx context.Context, defaultThreshold decimal.Decimal) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE current_stock <= COALESCE(reorder_threshold, $1)
		ORDER BY current_stock, name`
	return r.list(ctx, query, defaultThreshold)
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var hsn *string
	if err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &hsn, &it.Unit,
		&it.SalePrice, &it.PurchasePrice, &it.TaxRatePercent, &it.CurrentStock, &it.ReorderThreshold,
		&it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	it.HSNCode = derefStr(hsn)
	return &it, nil
}
