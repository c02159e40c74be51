package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/application/inventory"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

// ─── Fake ─────────────────────────────────────────────────────────────────────

type memItemRepo struct {
	items []*entity.Item
}

func (r *memItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.items = append(r.items, it)
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) UpdateStock(context.Context, string, decimal.Decimal, decimal.Decimal, time.Time) error {
	return nil
}

func (r *memItemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	if offset >= len(r.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.items) {
		end = len(r.items)
	}
	return r.items[offset:end], nil
}

func (r *memItemRepo) ListLowStock(_ context.Context, def decimal.Decimal) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if it.IsLowStock(def) {
			out = append(out, it)
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func newUseCase() (*inventory.ItemUseCase, *memItemRepo) {
	repo := &memItemRepo{}
	state := &appstate.State{
		ReorderThreshold: dec("10"),
		PageLimit:        appstate.DefaultPageLimit,
		MaxPageLimit:     appstate.MaxPageLimit,
	}
	return inventory.NewItemUseCase(repo, state), repo
}

// ─── Create ───────────────────────────────────────────────────────────────────

func TestItemCreate_OK(t *testing.T) {
	uc, repo := newUseCase()

	out, err := uc.Create(context.Background(), dto.CreateItemRequest{
		SKU:            " SKU-1 ",
		Name:           "Arroz basmati",
		HSNCode:        "1006",
		SalePrice:      dec("120"),
		TaxRatePercent: dec("5"),
		CurrentStock:   dec("8"),
	})
	require.NoError(t, err)

	assert.Equal(t, "SKU-1", out.SKU)
	assert.Equal(t, "nos", out.Unit)
	assert.True(t, out.LowStock)
	assert.NotEmpty(t, out.ID)
	assert.Len(t, repo.items, 1)
}

func TestItemCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	req := dto.CreateItemRequest{SKU: "A", Name: "x"}

	_, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_ValoresInvalidos(t *testing.T) {
	uc, _ := newUseCase()
	cases := map[string]dto.CreateItemRequest{
		"sin sku":          {Name: "x"},
		"precio negativo":  {SKU: "A", Name: "x", SalePrice: dec("-1")},
		"stock negativo":   {SKU: "A", Name: "x", CurrentStock: dec("-0.5")},
		"tarifa mayor 100": {SKU: "A", Name: "x", TaxRatePercent: dec("101")},
		"umbral negativo":  {SKU: "A", Name: "x", ReorderThreshold: ptr(dec("-2"))},
	}
	for name, req := range cases {
		_, err := uc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

// ─── Stock bajo ───────────────────────────────────────────────────────────────

func TestItemLowStock_UmbralPropioYPorDefecto(t *testing.T) {
	uc, repo := newUseCase()
	repo.items = []*entity.Item{
		{ID: "1", SKU: "A", CurrentStock: dec("10")},                                 // = umbral por defecto
		{ID: "2", SKU: "B", CurrentStock: dec("11")},                                 // sobre el umbral
		{ID: "3", SKU: "C", CurrentStock: dec("0"), ReorderThreshold: ptr(dec("0"))}, // umbral propio cero
		{ID: "4", SKU: "D", CurrentStock: dec("3"), ReorderThreshold: ptr(dec("2"))}, // sobre su umbral
	}

	out, err := uc.LowStock(context.Background())
	require.NoError(t, err)

	var skus []string
	for _, it := range out {
		skus = append(skus, it.SKU)
		assert.True(t, it.LowStock)
	}
	assert.Equal(t, []string{"A", "C"}, skus)
}

func TestItemList_PaginaPorDefecto(t *testing.T) {
	uc, repo := newUseCase()
	for i := 0; i < 25; i++ {
		repo.items = append(repo.items, &entity.Item{ID: string(rune('a' + i)), CurrentStock: dec("100")})
	}

	out, err := uc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, out, appstate.DefaultPageLimit)
	assert.False(t, out[0].LowStock)
}
