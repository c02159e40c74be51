package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gstbooks-api/pkg/money"
)

func TestFormat_AgrupacionIndia(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"1180":       "1,180.00",
		"123456.785": "1,23,456.79",
		"10000000":   "1,00,00,000.00",
		"99.994":     "99.99",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.Format(decimal.RequireFromString(in)), in)
	}
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹1,180.00", money.FormatINR(decimal.NewFromInt(1180)))
	assert.Equal(t, "-₹50.50", money.FormatINR(decimal.RequireFromString("-50.5")))
}
