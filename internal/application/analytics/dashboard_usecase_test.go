package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gstbooks-api/internal/application/analytics"
	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

type fakeSource struct {
	in  dashboard.Inputs
	err error
}

func (f *fakeSource) LoadInputs(context.Context) (dashboard.Inputs, error) {
	return f.in, f.err
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func newState(threshold string) *appstate.State {
	return &appstate.State{
		ReorderThreshold: dec(threshold),
		PageLimit:        appstate.DefaultPageLimit,
		MaxPageLimit:     appstate.MaxPageLimit,
	}
}

func TestGetStats_CalculaYFormatea(t *testing.T) {
	src := &fakeSource{in: dashboard.Inputs{
		Invoices: []entity.Invoice{
			{ID: "1", InvoiceType: entity.InvoiceTypeSale, TotalAmount: dec("123456.78"), Status: entity.InvoiceStatusPaid},
			{ID: "2", InvoiceType: entity.InvoiceTypePurchase, TotalAmount: dec("300"), Status: entity.InvoiceStatusPaid},
		},
		Items: []entity.Item{
			{ID: "a", CurrentStock: dec("4")},
			{ID: "b", CurrentStock: dec("50")},
		},
		Parties: []entity.Party{{ID: "p", Type: entity.PartyTypeCustomer}},
	}}
	m := metrics.New("test")
	uc := analytics.NewDashboardUseCase(src, "postgres", newState("5"), m, logger.Nop())

	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, dec("123456.78").Equal(out.TotalSales))
	assert.Equal(t, "₹1,23,456.78", out.Formatted["total_sales"])
	assert.Equal(t, "₹300.00", out.Formatted["total_purchases"])
	assert.Equal(t, 1, out.LowStockCount)
	assert.Equal(t, 1, out.TotalPartiesCount)
	assert.Equal(t, 2, out.PaidInvoicesCount)
	assert.Equal(t, "postgres", out.Source)
	assert.NotEmpty(t, out.GeneratedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DashboardLoads.WithLabelValues("test", "postgres", "success")))
}

func TestGetStats_UmbralConfiguradoAplica(t *testing.T) {
	src := &fakeSource{in: dashboard.Inputs{
		Items: []entity.Item{{ID: "a", CurrentStock: dec("15")}},
	}}

	low, err := analytics.NewDashboardUseCase(src, "bff", newState("20"), nil, nil).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, low.LowStockCount)

	normal, err := analytics.NewDashboardUseCase(src, "bff", newState("10"), nil, nil).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, normal.LowStockCount)
}

func TestGetStats_UmbralCeroCoincideConListadoDeItems(t *testing.T) {
	items := []entity.Item{
		{ID: "a", CurrentStock: dec("5")},
		{ID: "b", CurrentStock: dec("0")},
		{ID: "c", CurrentStock: dec("3"), ReorderThreshold: ptr(dec("4"))},
	}
	state := newState("0")

	out, err := analytics.NewDashboardUseCase(&fakeSource{in: dashboard.Inputs{Items: items}}, "postgres", state, nil, nil).
		GetStats(context.Background())
	require.NoError(t, err)

	low := 0
	for _, it := range items {
		if it.IsLowStock(state.ReorderThreshold) {
			low++
		}
	}
	assert.Equal(t, 2, low)
	assert.Equal(t, low, out.LowStockCount)
}

func TestGetStats_ErrorDeFuente(t *testing.T) {
	upstream := errors.New("bff caído")
	m := metrics.New("test")
	uc := analytics.NewDashboardUseCase(&fakeSource{err: upstream}, "bff", newState("10"), m, logger.Nop())

	out, err := uc.GetStats(context.Background())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DashboardLoads.WithLabelValues("test", "bff", "error")))
}
