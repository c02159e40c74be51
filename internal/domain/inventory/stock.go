// Package inventory contiene las reglas de movimiento de stock que disparan las facturas.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
)

// WeightedAverageCost costo promedio ponderado tras una entrada.
// nuevo = ((stock * costo) + (cantEntrada * costoEntrada)) / (stock + cantEntrada)
// Si el stock previo es negativo o el total no es positivo se toma el costo de la entrada.
func WeightedAverageCost(stock, cost, qtyIn, costIn decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	total := stock.Add(qtyIn)
	if !total.IsPositive() {
		return costIn
	}
	return stock.Mul(cost).Add(qtyIn.Mul(costIn)).Div(total)
}

// Movement cantidad y costo unitario de un ítem dentro de una factura.
type Movement struct {
	ItemID   string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Result stock y costo de compra resultantes.
type Result struct {
	Stock         decimal.Decimal
	PurchasePrice decimal.Decimal
}

// ApplySale descuenta la cantidad vendida. No permite dejar el stock negativo.
func ApplySale(it entity.Item, qty decimal.Decimal) (Result, error) {
	if it.CurrentStock.LessThan(qty) {
		return Result{}, domain.ErrInsufficientStock
	}
	return Result{Stock: it.CurrentStock.Sub(qty), PurchasePrice: it.PurchasePrice}, nil
}

// ApplyPurchase suma la cantidad comprada y recalcula el costo promedio (2 decimales).
func ApplyPurchase(it entity.Item, qty, unitCost decimal.Decimal) Result {
	cost := WeightedAverageCost(it.CurrentStock, it.PurchasePrice, qty, unitCost)
	return Result{Stock: it.CurrentStock.Add(qty), PurchasePrice: cost.Round(2)}
}

// Merge agrupa las líneas del mismo ítem conservando el orden de primera aparición.
// El costo unitario de un grupo es el promedio ponderado por cantidad.
func Merge(moves []Movement) []Movement {
	idx := make(map[string]int, len(moves))
	out := make([]Movement, 0, len(moves))
	for _, m := range moves {
		if m.ItemID == "" {
			continue
		}
		i, ok := idx[m.ItemID]
		if !ok {
			idx[m.ItemID] = len(out)
			out = append(out, m)
			continue
		}
		prev := out[i]
		out[i] = Movement{
			ItemID:   m.ItemID,
			Quantity: prev.Quantity.Add(m.Quantity),
			UnitCost: WeightedAverageCost(prev.Quantity, prev.UnitCost, m.Quantity, m.UnitCost),
		}
	}
	return out
}
