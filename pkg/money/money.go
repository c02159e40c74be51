// Package money formatea montos en rupias con agrupación india (1,23,456.78).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Round2 redondea half-up a 2 decimales (los montos son no negativos).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format devuelve el monto con dos decimales y separadores en-IN, sin símbolo.
// La parte entera se agrupa con x/text; los decimales salen de decimal.StringFixed
// para no pasar por float64.
func Format(d decimal.Decimal) string {
	fixed := Round2(d).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	grouped := intPart
	if n, err := decimal.NewFromString(intPart); err == nil {
		grouped = printer.Sprint(number.Decimal(n.IntPart()))
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped + "." + frac
}

// FormatINR antepone el símbolo de la rupia.
func FormatINR(d decimal.Decimal) string {
	s := Format(d)
	if strings.HasPrefix(s, "-") {
		return "-₹" + strings.TrimPrefix(s, "-")
	}
	return "₹" + s
}
