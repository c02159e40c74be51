package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ItemUseCase alta y consulta de ítems de inventario.
type ItemUseCase struct {
	repo  repository.ItemRepository
	state *appstate.State
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, state *appstate.State) *ItemUseCase {
	return &ItemUseCase{repo: repo, state: state}
}

// Create crea un ítem. Precios y stock no negativos; tarifa entre 0 y 100; SKU único.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	for field, v := range map[string]decimal.Decimal{
		"sale_price":     in.SalePrice,
		"purchase_price": in.PurchasePrice,
		"current_stock":  in.CurrentStock,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
		}
	}
	if in.TaxRatePercent.IsNegative() || in.TaxRatePercent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: tax_rate_percent debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if in.ReorderThreshold != nil && in.ReorderThreshold.IsNegative() {
		return nil, fmt.Errorf("%w: reorder_threshold no puede ser negativo", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "nos"
	}
	now := time.Now()
	it := &entity.Item{
		ID:               uuid.New().String(),
		SKU:              sku,
		Name:             name,
		HSNCode:          strings.TrimSpace(in.HSNCode),
		Unit:             unit,
		SalePrice:        in.SalePrice,
		PurchasePrice:    in.PurchasePrice,
		TaxRatePercent:   in.TaxRatePercent,
		CurrentStock:     in.CurrentStock,
		ReorderThreshold: in.ReorderThreshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return uc.toResponse(it), nil
}

// List lista ítems con paginación.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ItemResponse, error) {
	limit, offset = uc.state.Page(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// LowStock lista los ítems bajo su umbral (o el umbral por defecto configurado).
func (uc *ItemUseCase) LowStock(ctx context.Context) ([]*dto.ItemResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, uc.state.ReorderThreshold)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

func (uc *ItemUseCase) toResponses(list []*entity.Item) []*dto.ItemResponse {
	out := make([]*dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, uc.toResponse(it))
	}
	return out
}

func (uc *ItemUseCase) toResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:               it.ID,
		SKU:              it.SKU,
		Name:             it.Name,
		HSNCode:          it.HSNCode,
		Unit:             it.Unit,
		SalePrice:        it.SalePrice,
		PurchasePrice:    it.PurchasePrice,
		TaxRatePercent:   it.TaxRatePercent,
		CurrentStock:     it.CurrentStock,
		ReorderThreshold: it.ReorderThreshold,
		LowStock:         it.IsLowStock(uc.state.ReorderThreshold),
	}
}
