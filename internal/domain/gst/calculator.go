package gst

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ComputeInvoiceTotals calcula subtotal, descuentos, base gravable, CGST/SGST o IGST y total.
//
// Orden del cálculo:
//  1. extendido = cantidad * precio unitario
//  2. descuento de línea: porcentaje sobre el extendido, o valor fijo limitado al extendido
//  3. base de línea = extendido - descuento
//  4. agrupación de bases por tarifa
//  5. descuento global prorrateado entre tarifas
//  6. impuesto por tarifa: IGST si es interestatal, si no mitad CGST y mitad SGST
//  7. GrandTotal = base + impuestos, redondeado half-up a 2 decimales solo al final
//
// Una factura sin líneas no es un error: devuelve todos los totales en cero.
func ComputeInvoiceTotals(ctx InvoiceContext) (InvoiceTotals, error) {
	if err := Validate(ctx); err != nil {
		return InvoiceTotals{}, err
	}

	totals := InvoiceTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TaxableAmount: decimal.Zero,
		CGST:          decimal.Zero,
		SGST:          decimal.Zero,
		IGST:          decimal.Zero,
		GrandTotal:    decimal.Zero,
		Lines:         make([]LineTotals, 0, len(ctx.LineItems)),
	}

	byRate := make(map[string]*RateBucket)
	for _, li := range ctx.LineItems {
		extended := li.Quantity.Mul(li.UnitPrice)
		discount := lineDiscount(extended, li)
		taxable := extended.Sub(discount)

		totals.Subtotal = totals.Subtotal.Add(extended)
		totals.TotalDiscount = totals.TotalDiscount.Add(discount)
		totals.Lines = append(totals.Lines, LineTotals{
			Extended:       extended,
			Discount:       discount,
			Taxable:        taxable,
			TaxRatePercent: li.TaxRatePercent,
		})

		// String() normaliza ceros a la derecha: "18" y "18.00" caen en la misma tarifa.
		key := li.TaxRatePercent.String()
		b, ok := byRate[key]
		if !ok {
			b = &RateBucket{
				RatePercent: li.TaxRatePercent,
				Discount:    decimal.Zero,
				Taxable:     decimal.Zero,
				CGST:        decimal.Zero,
				SGST:        decimal.Zero,
				IGST:        decimal.Zero,
			}
			byRate[key] = b
		}
		b.Taxable = b.Taxable.Add(taxable)
	}

	buckets := make([]*RateBucket, 0, len(byRate))
	for _, b := range byRate {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].RatePercent.LessThan(buckets[j].RatePercent)
	})

	invoiceDiscount := applyInvoiceDiscount(buckets, ctx.InvoiceDiscount)
	totals.TotalDiscount = totals.TotalDiscount.Add(invoiceDiscount)

	totals.Buckets = make([]RateBucket, 0, len(buckets))
	for _, b := range buckets {
		tax := b.Taxable.Mul(b.RatePercent).Div(hundred)
		if ctx.IsInterState {
			b.IGST = tax
		} else {
			half := tax.Div(two)
			b.CGST = half
			b.SGST = half
		}
		totals.TaxableAmount = totals.TaxableAmount.Add(b.Taxable)
		totals.CGST = totals.CGST.Add(b.CGST)
		totals.SGST = totals.SGST.Add(b.SGST)
		totals.IGST = totals.IGST.Add(b.IGST)
		totals.Buckets = append(totals.Buckets, *b)
	}

	totals.GrandTotal = totals.TaxableAmount.
		Add(totals.CGST).
		Add(totals.SGST).
		Add(totals.IGST).
		Round(2)
	return totals, nil
}

// Validate revisa las reglas de entrada sin calcular nada.
func Validate(ctx InvoiceContext) error {
	for i, li := range ctx.LineItems {
		if !li.Quantity.IsPositive() {
			return newValidationError(KindInvalidQuantity, i, "la cantidad debe ser mayor que cero (recibido %s)", li.Quantity)
		}
		if li.UnitPrice.IsNegative() {
			return newValidationError(KindInvalidPrice, i, "el precio unitario no puede ser negativo (recibido %s)", li.UnitPrice)
		}
		if li.TaxRatePercent.IsNegative() {
			return newValidationError(KindInvalidTaxRate, i, "la tarifa no puede ser negativa (recibido %s)", li.TaxRatePercent)
		}
		if err := validateDiscount(i, li.DiscountPercent, li.DiscountFlat); err != nil {
			return err
		}
	}
	return validateDiscount(InvoiceLevel, ctx.InvoiceDiscount.Percent, ctx.InvoiceDiscount.Flat)
}

func validateDiscount(line int, percent, flat decimal.Decimal) error {
	if !percent.IsZero() && !flat.IsZero() {
		return newValidationError(KindAmbiguousDiscountMode, line, "no se puede usar descuento porcentual y fijo a la vez")
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return newValidationError(KindInvalidDiscount, line, "el descuento porcentual debe estar entre 0 y 100 (recibido %s)", percent)
	}
	if flat.IsNegative() {
		return newValidationError(KindInvalidDiscount, line, "el descuento fijo no puede ser negativo (recibido %s)", flat)
	}
	return nil
}

// lineDiscount devuelve el descuento de una línea ya validada, nunca mayor que el extendido.
func lineDiscount(extended decimal.Decimal, li LineItem) decimal.Decimal {
	switch {
	case li.DiscountPercent.IsPositive():
		return extended.Mul(li.DiscountPercent).Div(hundred)
	case li.DiscountFlat.IsPositive():
		return decimal.Min(li.DiscountFlat, extended)
	default:
		return decimal.Zero
	}
}

// applyInvoiceDiscount descuenta el descuento global de las tarifas y devuelve el total descontado.
// El porcentaje se aplica a cada tarifa; el fijo se prorratea por participación y la última
// tarifa absorbe el residuo para que la suma sea exacta.
func applyInvoiceDiscount(buckets []*RateBucket, d InvoiceDiscount) decimal.Decimal {
	applied := decimal.Zero
	switch {
	case d.Percent.IsPositive():
		for _, b := range buckets {
			cut := b.Taxable.Mul(d.Percent).Div(hundred)
			b.Discount = cut
			b.Taxable = b.Taxable.Sub(cut)
			applied = applied.Add(cut)
		}
	case d.Flat.IsPositive():
		gross := decimal.Zero
		for _, b := range buckets {
			gross = gross.Add(b.Taxable)
		}
		if !gross.IsPositive() {
			return decimal.Zero
		}
		flat := decimal.Min(d.Flat, gross)
		remaining := flat
		for i, b := range buckets {
			cut := remaining
			if i < len(buckets)-1 {
				cut = flat.Mul(b.Taxable).Div(gross)
			}
			cut = decimal.Min(cut, b.Taxable)
			if cut.IsNegative() {
				cut = decimal.Zero
			}
			b.Discount = cut
			b.Taxable = b.Taxable.Sub(cut)
			remaining = remaining.Sub(cut)
			applied = applied.Add(cut)
		}
	}
	return applied
}
