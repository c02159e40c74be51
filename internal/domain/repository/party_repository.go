package repository

import (
	"context"

	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

// PartyFilter filtros de listado de terceros.
type PartyFilter struct {
	Type   string // customer | supplier | both; vacío = todos
	Limit  int
	Offset int
}

// PartyRepository define el puerto de persistencia para Party (clientes y proveedores).
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	GetByGSTIN(ctx context.Context, gstin string) (*entity.Party, error)
	List(ctx context.Context, f PartyFilter) ([]*entity.Party, error)
}
