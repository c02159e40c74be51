package http

import (
	"context"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
)

// Contratos mínimos que usan los handlers. Los implementan los casos de uso de
// billing, inventory y analytics; en tests se sustituyen por stubs.

type InvoiceService interface {
	Calculate(ctx context.Context, in dto.CalculateInvoiceRequest) (*dto.InvoiceTotalsResponse, error)
	Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	List(ctx context.Context, in dto.InvoiceListRequest) ([]*dto.InvoiceResponse, error)
}

type PaymentService interface {
	Record(ctx context.Context, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	List(ctx context.Context, invoiceID string, limit, offset int) ([]*dto.PaymentResponse, error)
}

type PartyService interface {
	Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error)
	Get(ctx context.Context, id string) (*dto.PartyResponse, error)
	List(ctx context.Context, partyType string, limit, offset int) ([]*dto.PartyResponse, error)
}

type ItemService interface {
	Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error)
	List(ctx context.Context, limit, offset int) ([]*dto.ItemResponse, error)
	LowStock(ctx context.Context) ([]*dto.ItemResponse, error)
}

// Pager normaliza limit/offset igual que los casos de uso (lo implementa *appstate.State).
type Pager interface {
	Page(limit, offset int) (int, int)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}
