// Package dashboard reduce las colecciones crudas de facturas, pagos, productos
// y terceros a las métricas resumidas del tablero.
//
// Es una función total: no devuelve errores. Los montos ausentes llegan como cero
// desde la capa de normalización y los discriminadores vacíos no coinciden con ningún filtro.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

const defaultReorderThreshold = 10

// DefaultReorderThreshold umbral de stock bajo para productos sin umbral propio.
func DefaultReorderThreshold() decimal.Decimal {
	return decimal.NewFromInt(defaultReorderThreshold)
}

// Inputs colecciones tal como las devuelve el backend, ya normalizadas. No se modifican.
type Inputs struct {
	Invoices []entity.Invoice
	Payments []entity.Payment
	Items    []entity.Item
	Parties  []entity.Party
}

// Stats métricas del tablero.
type Stats struct {
	TotalSales        decimal.Decimal
	TotalPurchases    decimal.Decimal
	PendingAmount     decimal.Decimal
	Receivables       decimal.Decimal
	PaymentsReceived  decimal.Decimal
	LowStockCount     int
	TotalPartiesCount int
	CustomersCount    int
	SuppliersCount    int
	TotalItemsCount   int
	InvoicesCount     int
	PaidInvoicesCount int
}

// Aggregator calcula Stats. Sin ReorderThreshold se usa DefaultReorderThreshold;
// un umbral explícito, incluido cero, se respeta tal cual.
type Aggregator struct {
	ReorderThreshold *decimal.Decimal
}

// ComputeStats calcula las métricas con el umbral por defecto.
func ComputeStats(in Inputs) Stats {
	return Aggregator{}.Compute(in)
}

// Compute recorre cada colección una vez; cada métrica es independiente del resto.
func (a Aggregator) Compute(in Inputs) Stats {
	threshold := DefaultReorderThreshold()
	if a.ReorderThreshold != nil {
		threshold = *a.ReorderThreshold
	}

	stats := Stats{
		TotalSales:       decimal.Zero,
		TotalPurchases:   decimal.Zero,
		PendingAmount:    decimal.Zero,
		Receivables:      decimal.Zero,
		PaymentsReceived: decimal.Zero,
	}

	paidByInvoice := make(map[string]decimal.Decimal)
	for _, p := range in.Payments {
		stats.PaymentsReceived = stats.PaymentsReceived.Add(p.Amount)
		if p.InvoiceID == "" {
			continue
		}
		paidByInvoice[p.InvoiceID] = paidByInvoice[p.InvoiceID].Add(p.Amount)
	}

	stats.InvoicesCount = len(in.Invoices)
	for _, inv := range in.Invoices {
		switch inv.InvoiceType {
		case entity.InvoiceTypeSale:
			stats.TotalSales = stats.TotalSales.Add(inv.TotalAmount)
		case entity.InvoiceTypePurchase:
			stats.TotalPurchases = stats.TotalPurchases.Add(inv.TotalAmount)
		}

		if isPending(inv.Status) {
			stats.PendingAmount = stats.PendingAmount.Add(inv.TotalAmount)
		}
		if inv.Status == entity.InvoiceStatusPaid {
			stats.PaidInvoicesCount++
		}

		if inv.InvoiceType == entity.InvoiceTypeSale && isReceivable(inv.Status) {
			paid := inv.PaidAmount
			if paid.IsZero() {
				paid = paidByInvoice[inv.ID]
			}
			due := inv.TotalAmount.Sub(paid)
			if due.IsPositive() {
				stats.Receivables = stats.Receivables.Add(due)
			}
		}
	}

	stats.TotalItemsCount = len(in.Items)
	for _, it := range in.Items {
		if it.IsLowStock(threshold) {
			stats.LowStockCount++
		}
	}

	stats.TotalPartiesCount = len(in.Parties)
	for _, p := range in.Parties {
		if p.IsCustomer() {
			stats.CustomersCount++
		}
		if p.IsSupplier() {
			stats.SuppliersCount++
		}
	}

	return stats
}

// isPending estados que cuentan como monto pendiente.
func isPending(status string) bool {
	return status == entity.InvoiceStatusPending || status == entity.InvoiceStatusPartial
}

// isReceivable estados de venta con saldo por cobrar.
func isReceivable(status string) bool {
	switch status {
	case entity.InvoiceStatusPending, entity.InvoiceStatusPartial,
		entity.InvoiceStatusUnpaid, entity.InvoiceStatusOverdue:
		return true
	}
	return false
}
