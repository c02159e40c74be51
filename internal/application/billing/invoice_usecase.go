package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
	"github.com/jhoicas/gstbooks-api/internal/domain/inventory"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
	"github.com/jhoicas/gstbooks-api/pkg/money"
)

const dateLayout = "2006-01-02"

// Prefijos del correlativo automático por tipo de factura.
var numberPrefix = map[string]string{
	entity.InvoiceTypeSale:     "INV",
	entity.InvoiceTypePurchase: "PUR",
}

// InvoiceUseCase cálculo previo, emisión y consulta de facturas.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	partyRepo   repository.PartyRepository
	itemRepo    repository.ItemRepository
	state       *appstate.State
	metrics     *metrics.Metrics
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. metrics puede ser nil.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	partyRepo repository.PartyRepository,
	itemRepo repository.ItemRepository,
	state *appstate.State,
	m *metrics.Metrics,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		itemRepo:    itemRepo,
		state:       state,
		metrics:     m,
		log:         log.Component("billing"),
		now:         time.Now,
	}
}

// Calculate calcula los totales sin persistir nada.
func (uc *InvoiceUseCase) Calculate(ctx context.Context, in dto.CalculateInvoiceRequest) (*dto.InvoiceTotalsResponse, error) {
	interState, err := uc.resolveInterState(ctx, in)
	if err != nil {
		return nil, err
	}
	invoiceType := in.InvoiceType
	if invoiceType == "" {
		invoiceType = entity.InvoiceTypeSale
	}
	lines, err := uc.buildLines(ctx, invoiceType, in.LineItems)
	if err != nil {
		return nil, err
	}
	totals, err := uc.compute(gst.InvoiceContext{
		IsInterState:    interState,
		LineItems:       lines,
		InvoiceDiscount: gst.InvoiceDiscount{Percent: in.DiscountPercent, Flat: in.DiscountFlat},
	})
	if err != nil {
		return nil, err
	}
	return toTotalsResponse(interState, lines, totals), nil
}

// Create valida, calcula y persiste cabecera y líneas en una sola transacción.
// La factura queda en estado pending con paid_amount 0. Las líneas con ítem mueven stock:
// la venta descuenta y la compra suma y recalcula el costo promedio.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	prefix, ok := numberPrefix[in.InvoiceType]
	if !ok || in.PartyID == "" || len(in.LineItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	party, err := uc.partyRepo.GetByID(ctx, in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, fmt.Errorf("tercero %s: %w", in.PartyID, domain.ErrNotFound)
	}
	if in.InvoiceType == entity.InvoiceTypeSale && !party.IsCustomer() {
		return nil, fmt.Errorf("%w: el tercero no es cliente", domain.ErrInvalidInput)
	}
	if in.InvoiceType == entity.InvoiceTypePurchase && !party.IsSupplier() {
		return nil, fmt.Errorf("%w: el tercero no es proveedor", domain.ErrInvalidInput)
	}

	now := uc.now()
	date := now
	if in.Date != "" {
		if date, err = time.Parse(dateLayout, in.Date); err != nil {
			return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, in.Date)
		}
	}
	var due *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de vencimiento inválida %q", domain.ErrInvalidInput, in.DueDate)
		}
		if d.Before(truncateDay(date)) {
			return nil, fmt.Errorf("%w: el vencimiento es anterior a la fecha de la factura", domain.ErrInvalidInput)
		}
		due = &d
	}

	lines, err := uc.buildLines(ctx, in.InvoiceType, in.LineItems)
	if err != nil {
		return nil, err
	}
	interState := uc.state.IsInterState(party.StateCode)
	totals, err := uc.compute(gst.InvoiceContext{
		IsInterState:    interState,
		LineItems:       lines,
		InvoiceDiscount: gst.InvoiceDiscount{Percent: in.DiscountPercent, Flat: in.DiscountFlat},
	})
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		Number:        in.Number,
		InvoiceType:   in.InvoiceType,
		Status:        entity.InvoiceStatusPending,
		PartyID:       party.ID,
		Date:          date,
		DueDate:       due,
		IsInterState:  interState,
		Subtotal:      totals.Subtotal,
		TotalDiscount: totals.TotalDiscount,
		TaxableAmount: totals.TaxableAmount,
		CGST:          totals.CGST,
		SGST:          totals.SGST,
		IGST:          totals.IGST,
		TotalAmount:   totals.GrandTotal,
		PaidAmount:    decimal.Zero,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	entLines := make([]*entity.InvoiceLine, 0, len(lines))
	moves := make([]inventory.Movement, 0, len(lines))
	for i, li := range lines {
		if itemID := in.LineItems[i].ItemID; itemID != "" && li.Quantity.IsPositive() {
			moves = append(moves, inventory.Movement{
				ItemID:   itemID,
				Quantity: li.Quantity,
				UnitCost: totals.Lines[i].Taxable.Div(li.Quantity),
			})
		}
		entLines = append(entLines, &entity.InvoiceLine{
			ID:              uuid.New().String(),
			InvoiceID:       inv.ID,
			LineNo:          i + 1,
			ItemID:          in.LineItems[i].ItemID,
			Description:     li.Description,
			HSNCode:         li.HSNCode,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			DiscountPercent: li.DiscountPercent,
			DiscountFlat:    li.DiscountFlat,
			TaxRatePercent:  li.TaxRatePercent,
			TaxableAmount:   totals.Lines[i].Taxable,
		})
	}

	moves = inventory.Merge(moves)

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.PaymentRepository, itemRepo repository.ItemRepository) error {
		if inv.Number == "" {
			n, err := invoiceRepo.NextNumber(ctx, prefix)
			if err != nil {
				return err
			}
			inv.Number = n
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, l := range entLines {
			if err := invoiceRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		return postStock(ctx, itemRepo, inv.InvoiceType, moves, now)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("party_id", party.ID).Msg("no se pudo guardar la factura")
		return nil, err
	}

	uc.metrics.RecordInvoiceCreated(inv.InvoiceType, inv.IsInterState)
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("type", inv.InvoiceType).
		Bool("inter_state", inv.IsInterState).
		Str("total", inv.TotalAmount.StringFixed(2)).
		Msg("factura creada")

	resp := toInvoiceResponse(inv, entLines)
	resp.Totals = toTotalsResponse(interState, lines, totals)
	return resp, nil
}

// Get devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// List lista cabeceras con filtros.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) ([]*dto.InvoiceResponse, error) {
	limit, offset := uc.state.Page(in.Limit, in.Offset)
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		InvoiceType: in.InvoiceType,
		Status:      in.Status,
		PartyID:     in.PartyID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

func (uc *InvoiceUseCase) compute(ictx gst.InvoiceContext) (gst.InvoiceTotals, error) {
	totals, err := gst.ComputeInvoiceTotals(ictx)
	uc.metrics.RecordCalculation(err)
	return totals, err
}

// resolveInterState: flag explícito, luego código de estado del tercero, luego el tercero guardado.
func (uc *InvoiceUseCase) resolveInterState(ctx context.Context, in dto.CalculateInvoiceRequest) (bool, error) {
	switch {
	case in.IsInterState != nil:
		return *in.IsInterState, nil
	case in.PartyStateCode != "":
		return uc.state.IsInterState(in.PartyStateCode), nil
	case in.PartyID != "":
		party, err := uc.partyRepo.GetByID(ctx, in.PartyID)
		if err != nil {
			return false, err
		}
		if party == nil {
			return false, fmt.Errorf("tercero %s: %w", in.PartyID, domain.ErrNotFound)
		}
		return uc.state.IsInterState(party.StateCode), nil
	}
	return false, nil
}

// buildLines completa precio, tarifa, HSN y descripción desde el ítem cuando la línea lo referencia.
func (uc *InvoiceUseCase) buildLines(ctx context.Context, invoiceType string, in []dto.LineItemRequest) ([]gst.LineItem, error) {
	out := make([]gst.LineItem, 0, len(in))
	for i, r := range in {
		li := gst.LineItem{
			Description:     r.Description,
			HSNCode:         r.HSNCode,
			Quantity:        r.Quantity,
			DiscountPercent: r.DiscountPercent,
			DiscountFlat:    r.DiscountFlat,
		}
		if r.UnitPrice != nil {
			li.UnitPrice = *r.UnitPrice
		}
		if r.TaxRatePercent != nil {
			li.TaxRatePercent = *r.TaxRatePercent
		}
		if r.ItemID != "" {
			item, err := uc.itemRepo.GetByID(ctx, r.ItemID)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, fmt.Errorf("línea %d: ítem %s: %w", i+1, r.ItemID, domain.ErrNotFound)
			}
			if r.UnitPrice == nil {
				li.UnitPrice = item.SalePrice
				if invoiceType == entity.InvoiceTypePurchase {
					li.UnitPrice = item.PurchasePrice
				}
			}
			if r.TaxRatePercent == nil {
				li.TaxRatePercent = item.TaxRatePercent
			}
			if li.HSNCode == "" {
				li.HSNCode = item.HSNCode
			}
			if li.Description == "" {
				li.Description = item.Name
			}
		}
		out = append(out, li)
	}
	return out, nil
}

// postStock bloquea cada ítem y aplica el movimiento de la factura.
func postStock(ctx context.Context, itemRepo repository.ItemRepository, invoiceType string, moves []inventory.Movement, at time.Time) error {
	for _, m := range moves {
		item, err := itemRepo.GetByIDForUpdate(ctx, m.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("ítem %s: %w", m.ItemID, domain.ErrNotFound)
		}
		var res inventory.Result
		if invoiceType == entity.InvoiceTypePurchase {
			res = inventory.ApplyPurchase(*item, m.Quantity, m.UnitCost)
		} else {
			if res, err = inventory.ApplySale(*item, m.Quantity); err != nil {
				return fmt.Errorf("ítem %s (%s): %w", item.SKU, item.CurrentStock.String(), err)
			}
		}
		if err := itemRepo.UpdateStock(ctx, item.ID, res.Stock, res.PurchasePrice, at); err != nil {
			return err
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toTotalsResponse(interState bool, lines []gst.LineItem, t gst.InvoiceTotals) *dto.InvoiceTotalsResponse {
	resp := &dto.InvoiceTotalsResponse{
		IsInterState:        interState,
		Subtotal:            t.Subtotal,
		TotalDiscount:       t.TotalDiscount,
		TaxableAmount:       t.TaxableAmount,
		CGST:                t.CGST,
		SGST:                t.SGST,
		IGST:                t.IGST,
		TotalTax:            t.TotalTax(),
		GrandTotal:          t.GrandTotal,
		GrandTotalFormatted: money.FormatINR(t.GrandTotal),
		Lines:               make([]dto.LineTotalsResponse, 0, len(t.Lines)),
		TaxBreakup:          make([]dto.TaxBreakupResponse, 0, len(t.Buckets)),
	}
	for i, l := range t.Lines {
		resp.Lines = append(resp.Lines, dto.LineTotalsResponse{
			LineNo:         i + 1,
			Description:    lines[i].Description,
			HSNCode:        lines[i].HSNCode,
			Quantity:       lines[i].Quantity,
			UnitPrice:      lines[i].UnitPrice,
			TaxRatePercent: l.TaxRatePercent,
			Extended:       l.Extended,
			Discount:       l.Discount,
			Taxable:        l.Taxable,
		})
	}
	for _, b := range t.Buckets {
		resp.TaxBreakup = append(resp.TaxBreakup, dto.TaxBreakupResponse{
			RatePercent: b.RatePercent,
			Discount:    b.Discount,
			Taxable:     b.Taxable,
			CGST:        b.CGST,
			SGST:        b.SGST,
			IGST:        b.IGST,
		})
	}
	return resp
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		InvoiceType:   inv.InvoiceType,
		Status:        inv.Status,
		PartyID:       inv.PartyID,
		Date:          inv.Date.Format(dateLayout),
		IsInterState:  inv.IsInterState,
		Subtotal:      inv.Subtotal,
		TotalDiscount: inv.TotalDiscount,
		TaxableAmount: inv.TaxableAmount,
		CGST:          inv.CGST,
		SGST:          inv.SGST,
		IGST:          inv.IGST,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		Outstanding:   inv.Outstanding(),
		Notes:         inv.Notes,
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format(dateLayout)
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:              l.ID,
			LineNo:          l.LineNo,
			ItemID:          l.ItemID,
			Description:     l.Description,
			HSNCode:         l.HSNCode,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			DiscountFlat:    l.DiscountFlat,
			TaxRatePercent:  l.TaxRatePercent,
			TaxableAmount:   l.TaxableAmount,
		})
	}
	return resp
}
