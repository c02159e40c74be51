package billing_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

// ─── Repos en memoria ─────────────────────────────────────────────────────────

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine
	order    []string
	seq      map[string]int
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: map[string]*entity.Invoice{}, lines: map[string][]*entity.InvoiceLine{}}
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *memInvoiceRepo) CreateLine(_ context.Context, l *entity.InvoiceLine) error {
	r.lines[l.InvoiceID] = append(r.lines[l.InvoiceID], l)
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *memInvoiceRepo) GetLines(_ context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	return r.lines[invoiceID], nil
}

func (r *memInvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, id := range r.order {
		inv := r.invoices[id]
		if f.InvoiceType != "" && inv.InvoiceType != f.InvoiceType {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.PartyID != "" && inv.PartyID != f.PartyID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *memInvoiceRepo) ApplyPayment(_ context.Context, id string, paid decimal.Decimal, status string, at time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return fmt.Errorf("factura %s no existe", id)
	}
	inv.PaidAmount = paid
	inv.Status = status
	inv.UpdatedAt = at
	return nil
}

// NextNumber mismo criterio que el repositorio real: contador por prefijo, nunca por
// debajo del mayor sufijo numérico ya usado.
func (r *memInvoiceRepo) NextNumber(_ context.Context, prefix string) (string, error) {
	if r.seq == nil {
		r.seq = map[string]int{}
	}
	n := r.seq[prefix] + 1
	for _, inv := range r.invoices {
		rest, ok := strings.CutPrefix(inv.Number, prefix+"-")
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(rest); err == nil && v >= n {
			n = v + 1
		}
	}
	r.seq[prefix] = n
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}

type memPaymentRepo struct {
	payments []*entity.Payment
}

func (r *memPaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *memPaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if f.InvoiceID == "" || p.InvoiceID == f.InvoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memPartyRepo struct {
	parties []*entity.Party
}

func (r *memPartyRepo) Create(_ context.Context, p *entity.Party) error {
	r.parties = append(r.parties, p)
	return nil
}

func (r *memPartyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	for _, p := range r.parties {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPartyRepo) GetByGSTIN(_ context.Context, g string) (*entity.Party, error) {
	for _, p := range r.parties {
		if p.GSTIN == g {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPartyRepo) List(_ context.Context, f repository.PartyFilter) ([]*entity.Party, error) {
	var out []*entity.Party
	for _, p := range r.parties {
		if f.Type == "" || p.Type == f.Type {
			out = append(out, p)
		}
	}
	return out, nil
}

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

func (r *memItemRepo) UpdateStock(_ context.Context, id string, stock, purchasePrice decimal.Decimal, at time.Time) error {
	for _, it := range r.items {
		if it.ID == id {
			it.CurrentStock = stock
			it.PurchasePrice = purchasePrice
			it.UpdatedAt = at
			return nil
		}
	}
	return fmt.Errorf("ítem %s no existe", id)
}

func (r *memItemRepo) List(context.Context, int, int) ([]*entity.Item, error) { return r.items, nil }

func (r *memItemRepo) ListLowStock(context.Context, decimal.Decimal) ([]*entity.Item, error) {
	return nil, nil
}

// memTx ejecuta fn sobre los mismos repos en memoria; calls cuenta las transacciones abiertas.
type memTx struct {
	invoices *memInvoiceRepo
	payments *memPaymentRepo
	items    *memItemRepo
	calls    int
}

func (t *memTx) RunBilling(_ context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository, repository.ItemRepository) error) error {
	t.calls++
	return fn(t.invoices, t.payments, t.items)
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

const (
	customerID = "6f1c2a34-1b2c-4d5e-8f90-0a1b2c3d4e5f"
	supplierID = "7a2d3b45-2c3d-4e6f-9a01-1b2c3d4e5f60"
	itemID     = "8b3e4c56-3d4e-4f70-8b12-2c3d4e5f6071"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func assertDec(want string, got decimal.Decimal) bool { return dec(want).Equal(got) }

type fixture struct {
	state    *appstate.State
	invoices *memInvoiceRepo
	payments *memPaymentRepo
	parties  *memPartyRepo
	items    *memItemRepo
	tx       *memTx
}

func newFixture() *fixture {
	f := &fixture{
		state: &appstate.State{
			Business:         appstate.Business{Name: "Demo Traders", GSTIN: "27AAPFU0939F1ZV", StateCode: "27"},
			ReorderThreshold: dec("10"),
			PageLimit:        appstate.DefaultPageLimit,
			MaxPageLimit:     appstate.MaxPageLimit,
		},
		invoices: newMemInvoiceRepo(),
		payments: &memPaymentRepo{},
		parties: &memPartyRepo{parties: []*entity.Party{
			{ID: customerID, Name: "Cliente Pune", Type: entity.PartyTypeCustomer, StateCode: "27"},
			{ID: supplierID, Name: "Proveedor Bengaluru", Type: entity.PartyTypeSupplier, StateCode: "29"},
		}},
		items: &memItemRepo{items: []*entity.Item{
			{ID: itemID, SKU: "ARROZ", Name: "Arroz basmati", HSNCode: "1006", SalePrice: dec("100"), PurchasePrice: dec("80"), TaxRatePercent: dec("5"), CurrentStock: dec("50")},
		}},
	}
	f.tx = &memTx{invoices: f.invoices, payments: f.payments, items: f.items}
	return f
}
