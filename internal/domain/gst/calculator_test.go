package gst_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", field, want, got.String())
}

func line(qty, price, rate string) gst.LineItem {
	return gst.LineItem{Quantity: dec(qty), UnitPrice: dec(price), TaxRatePercent: dec(rate)}
}

// snapshot serializa todos los montos para comparar resultados campo a campo.
func snapshot(t gst.InvoiceTotals) []string {
	out := []string{
		t.Subtotal.String(), t.TotalDiscount.String(), t.TaxableAmount.String(),
		t.CGST.String(), t.SGST.String(), t.IGST.String(), t.GrandTotal.String(),
	}
	for _, l := range t.Lines {
		out = append(out, l.Extended.String(), l.Discount.String(), l.Taxable.String())
	}
	for _, b := range t.Buckets {
		out = append(out, b.RatePercent.String(), b.Discount.String(), b.Taxable.String(),
			b.CGST.String(), b.SGST.String(), b.IGST.String())
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplos base
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeInvoiceTotals_FacturaSinLineas(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{IsInterState: false})
	require.NoError(t, err, "una factura sin líneas es un borrador válido")

	assertAmount(t, "0", totals.Subtotal, "subtotal")
	assertAmount(t, "0", totals.TotalDiscount, "descuento")
	assertAmount(t, "0", totals.TaxableAmount, "base")
	assertAmount(t, "0", totals.CGST, "cgst")
	assertAmount(t, "0", totals.SGST, "sgst")
	assertAmount(t, "0", totals.IGST, "igst")
	assertAmount(t, "0", totals.GrandTotal, "total")
	assert.Empty(t, totals.Lines)
	assert.Empty(t, totals.Buckets)
}

func TestComputeInvoiceTotals_UnaLineaIntraestatal(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		IsInterState: false,
		LineItems:    []gst.LineItem{line("2", "500", "18")},
	})
	require.NoError(t, err)

	assertAmount(t, "1000", totals.Subtotal, "subtotal")
	assertAmount(t, "90", totals.CGST, "cgst")
	assertAmount(t, "90", totals.SGST, "sgst")
	assertAmount(t, "0", totals.IGST, "igst")
	assertAmount(t, "1180", totals.GrandTotal, "total")
	assert.Equal(t, "1180.00", totals.GrandTotal.StringFixed(2))
}

func TestComputeInvoiceTotals_UnaLineaInterestatal(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		IsInterState: true,
		LineItems:    []gst.LineItem{line("2", "500", "18")},
	})
	require.NoError(t, err)

	assertAmount(t, "0", totals.CGST, "cgst")
	assertAmount(t, "0", totals.SGST, "sgst")
	assertAmount(t, "180", totals.IGST, "igst")
	assertAmount(t, "1180", totals.GrandTotal, "total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuentos
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeInvoiceTotals_DescuentoFijoMayorAlExtendidoQuedaEnCero(t *testing.T) {
	li := line("1", "100", "18")
	li.DiscountFlat = dec("150")

	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{LineItems: []gst.LineItem{li}})
	require.NoError(t, err)

	require.Len(t, totals.Lines, 1)
	assertAmount(t, "100", totals.Lines[0].Extended, "extendido")
	assertAmount(t, "100", totals.Lines[0].Discount, "descuento limitado al extendido")
	assertAmount(t, "0", totals.Lines[0].Taxable, "base de la línea")
	assert.False(t, totals.Lines[0].Taxable.IsNegative(), "la base de una línea nunca es negativa")
	assertAmount(t, "100", totals.Subtotal, "subtotal")
	assertAmount(t, "100", totals.TotalDiscount, "descuento total")
	assertAmount(t, "0", totals.GrandTotal, "total")
}

func TestComputeInvoiceTotals_DescuentoPorcentualDeLinea(t *testing.T) {
	li := line("3", "99.99", "12")
	li.DiscountPercent = dec("10")

	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{LineItems: []gst.LineItem{li}})
	require.NoError(t, err)

	assertAmount(t, "299.97", totals.Subtotal, "subtotal")
	assertAmount(t, "29.997", totals.TotalDiscount, "descuento")
	assertAmount(t, "269.973", totals.TaxableAmount, "base")
	assertAmount(t, "16.19838", totals.CGST, "cgst sin redondeo intermedio")
	assertAmount(t, "16.19838", totals.SGST, "sgst sin redondeo intermedio")
	assertAmount(t, "302.37", totals.GrandTotal, "total")
}

func TestComputeInvoiceTotals_DescuentoGlobalPorcentualSeProrrateaEntreTarifas(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		LineItems:       []gst.LineItem{line("1", "1000", "18"), line("2", "250", "5")},
		InvoiceDiscount: gst.InvoiceDiscount{Percent: dec("10")},
	})
	require.NoError(t, err)

	require.Len(t, totals.Buckets, 2)
	assertAmount(t, "5", totals.Buckets[0].RatePercent, "tarifa menor primero")
	assertAmount(t, "450", totals.Buckets[0].Taxable, "base 5%")
	assertAmount(t, "900", totals.Buckets[1].Taxable, "base 18%")

	assertAmount(t, "1500", totals.Subtotal, "subtotal")
	assertAmount(t, "150", totals.TotalDiscount, "descuento")
	assertAmount(t, "1350", totals.TaxableAmount, "base")
	assertAmount(t, "92.25", totals.CGST, "cgst")
	assertAmount(t, "92.25", totals.SGST, "sgst")
	assertAmount(t, "1534.5", totals.GrandTotal, "total")
}

func TestComputeInvoiceTotals_DescuentoGlobalFijoEquivalenteAlPorcentual(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		LineItems:       []gst.LineItem{line("1", "1000", "18"), line("2", "250", "5")},
		InvoiceDiscount: gst.InvoiceDiscount{Flat: dec("150")},
	})
	require.NoError(t, err)

	assertAmount(t, "50", totals.Buckets[0].Discount, "porción 5%")
	assertAmount(t, "100", totals.Buckets[1].Discount, "porción 18%")
	assertAmount(t, "1534.5", totals.GrandTotal, "total")
}

func TestComputeInvoiceTotals_DescuentoGlobalFijoNoExactoConservaBase(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		LineItems:       []gst.LineItem{line("1", "1000", "18"), line("2", "250", "5")},
		InvoiceDiscount: gst.InvoiceDiscount{Flat: dec("100")},
	})
	require.NoError(t, err)

	assertAmount(t, "100", totals.TotalDiscount, "el residuo lo absorbe la última tarifa")
	assertAmount(t, "1400", totals.TaxableAmount, "base")
	assert.True(t, totals.Subtotal.Sub(totals.TotalDiscount).Equal(totals.TaxableAmount),
		"base = subtotal - descuento total")
	assertAmount(t, "1591.33", totals.GrandTotal, "total")
}

func TestComputeInvoiceTotals_DescuentoGlobalFijoMayorQueSubtotal(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		LineItems:       []gst.LineItem{line("1", "100", "18")},
		InvoiceDiscount: gst.InvoiceDiscount{Flat: dec("500")},
	})
	require.NoError(t, err)

	assertAmount(t, "100", totals.TotalDiscount, "descuento limitado al subtotal")
	assertAmount(t, "0", totals.TaxableAmount, "base")
	assertAmount(t, "0", totals.GrandTotal, "total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarifas y redondeo
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeInvoiceTotals_VariasTarifasSeAgrupanPorSeparado(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		LineItems: []gst.LineItem{
			line("1", "1000", "18"),
			line("2", "250", "5"),
			line("1", "100", "18.00"),
			line("4", "25", "0"),
		},
	})
	require.NoError(t, err)

	require.Len(t, totals.Buckets, 3, "18 y 18.00 son la misma tarifa")
	assertAmount(t, "0", totals.Buckets[0].RatePercent, "tarifa 0")
	assertAmount(t, "5", totals.Buckets[1].RatePercent, "tarifa 5")
	assertAmount(t, "18", totals.Buckets[2].RatePercent, "tarifa 18")
	assertAmount(t, "1100", totals.Buckets[2].Taxable, "base 18%")

	assertAmount(t, "1700", totals.Subtotal, "subtotal")
	assertAmount(t, "111.5", totals.CGST, "cgst")
	assertAmount(t, "111.5", totals.SGST, "sgst")
	assertAmount(t, "1923", totals.GrandTotal, "total")
}

func TestComputeInvoiceTotals_RedondeoHalfUpSoloAlFinal(t *testing.T) {
	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
		IsInterState: true,
		LineItems:    []gst.LineItem{line("1", "0.05", "10")},
	})
	require.NoError(t, err)

	assertAmount(t, "0.005", totals.IGST, "igst sin redondear")
	assertAmount(t, "0.06", totals.GrandTotal, "0.055 redondea hacia arriba")
}

func TestComputeInvoiceTotals_ExclusividadDeImpuestos(t *testing.T) {
	rates := []string{"0", "5", "12", "18", "28"}
	for _, inter := range []bool{false, true} {
		for _, r := range rates {
			totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{
				IsInterState: inter,
				LineItems:    []gst.LineItem{line("3", "333.33", r), line("1", "10", "12")},
			})
			require.NoError(t, err)

			stateFamily := totals.CGST.IsPositive() || totals.SGST.IsPositive()
			igstFamily := totals.IGST.IsPositive()
			assert.False(t, stateFamily && igstFamily, "nunca CGST/SGST e IGST a la vez (tarifa %s)", r)
			if inter {
				assert.True(t, totals.CGST.IsZero() && totals.SGST.IsZero(), "interestatal sin CGST/SGST")
			} else {
				assert.True(t, totals.IGST.IsZero(), "intraestatal sin IGST")
				assert.True(t, totals.CGST.Equal(totals.SGST), "CGST y SGST en mitades iguales")
			}
		}
	}
}

func TestComputeInvoiceTotals_Determinista(t *testing.T) {
	ctx := gst.InvoiceContext{
		LineItems: []gst.LineItem{
			line("7", "13.37", "28"),
			line("0.333", "1.11", "5"),
			line("2", "49.95", "12"),
		},
		InvoiceDiscount: gst.InvoiceDiscount{Flat: dec("7.77")},
	}
	first, err := gst.ComputeInvoiceTotals(ctx)
	require.NoError(t, err)
	second, err := gst.ComputeInvoiceTotals(ctx)
	require.NoError(t, err)

	assert.Equal(t, snapshot(first), snapshot(second))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeInvoiceTotals_Validacion(t *testing.T) {
	withPercent := func(li gst.LineItem, pct string) gst.LineItem { li.DiscountPercent = dec(pct); return li }
	withFlat := func(li gst.LineItem, flat string) gst.LineItem { li.DiscountFlat = dec(flat); return li }

	cases := []struct {
		name string
		ctx  gst.InvoiceContext
		kind gst.ErrorKind
		line int
	}{
		{"cantidad cero", gst.InvoiceContext{LineItems: []gst.LineItem{line("0", "10", "5")}}, gst.KindInvalidQuantity, 0},
		{"cantidad negativa", gst.InvoiceContext{LineItems: []gst.LineItem{line("1", "1", "5"), line("-1", "10", "5")}}, gst.KindInvalidQuantity, 1},
		{"precio negativo", gst.InvoiceContext{LineItems: []gst.LineItem{line("1", "-0.01", "5")}}, gst.KindInvalidPrice, 0},
		{"tarifa negativa", gst.InvoiceContext{LineItems: []gst.LineItem{line("1", "10", "-5")}}, gst.KindInvalidTaxRate, 0},
		{"porcentaje mayor a 100", gst.InvoiceContext{LineItems: []gst.LineItem{withPercent(line("1", "10", "5"), "100.01")}}, gst.KindInvalidDiscount, 0},
		{"porcentaje negativo", gst.InvoiceContext{LineItems: []gst.LineItem{withPercent(line("1", "10", "5"), "-1")}}, gst.KindInvalidDiscount, 0},
		{"fijo negativo", gst.InvoiceContext{LineItems: []gst.LineItem{withFlat(line("1", "10", "5"), "-1")}}, gst.KindInvalidDiscount, 0},
		{"ambos modos en la línea", gst.InvoiceContext{LineItems: []gst.LineItem{withFlat(withPercent(line("1", "10", "5"), "5"), "1")}}, gst.KindAmbiguousDiscountMode, 0},
		{"ambos modos en la factura", gst.InvoiceContext{
			LineItems:       []gst.LineItem{line("1", "10", "5")},
			InvoiceDiscount: gst.InvoiceDiscount{Percent: dec("5"), Flat: dec("1")},
		}, gst.KindAmbiguousDiscountMode, gst.InvoiceLevel},
		{"porcentaje global fuera de rango", gst.InvoiceContext{InvoiceDiscount: gst.InvoiceDiscount{Percent: dec("150")}}, gst.KindInvalidDiscount, gst.InvoiceLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gst.ComputeInvoiceTotals(tc.ctx)
			require.Error(t, err)

			var vErr *gst.ValidationError
			require.True(t, errors.As(err, &vErr), "debe ser *gst.ValidationError")
			assert.Equal(t, tc.kind, vErr.Kind)
			assert.Equal(t, tc.line, vErr.Line)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestComputeInvoiceTotals_DescuentoCienPorCientoEsValido(t *testing.T) {
	li := line("1", "10", "5")
	li.DiscountPercent = dec("100")

	totals, err := gst.ComputeInvoiceTotals(gst.InvoiceContext{LineItems: []gst.LineItem{li}})
	require.NoError(t, err)
	assertAmount(t, "0", totals.GrandTotal, "total")
}

func TestIsInterState(t *testing.T) {
	assert.False(t, gst.IsInterState("29", "29"))
	assert.True(t, gst.IsInterState("29", "27"))
	assert.False(t, gst.IsInterState("29", ""), "estado desconocido se trata como local")
	assert.False(t, gst.IsInterState("", "27"))
	assert.False(t, gst.IsInterState(" 29", "29 "))
}
