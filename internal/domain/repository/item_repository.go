package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (movimiento de stock).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// UpdateStock fija el stock y el costo de compra resultantes de un movimiento.
	UpdateStock(ctx context.Context, id string, stock, purchasePrice decimal.Decimal, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	// ListLowStock devuelve los ítems con stock <= su umbral, o <= defaultThreshold si no tienen uno.
	ListLowStock(ctx context.Context, defaultThreshold decimal.Decimal) ([]*entity.Item, error)
}
