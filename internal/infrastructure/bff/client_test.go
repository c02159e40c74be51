package bff_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/bff"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

var responses = map[string]string{
	"/invoices": `{"data":[
		{"id":"1","invoiceType":"sale","totalAmount":1000,"status":"paid"},
		{"id":"2","invoice_type":"sale","total_amount":"500.50","status":"pending"},
		{"id":"3","invoiceType":"purchase","grandTotal":300,"status":"paid"}
	]}`,
	"/payments": `[{"invoiceId":"2","amount":"100.25"}]`,
	"/items":    `{"products":[{"id":"a","currentStock":3},{"id":"b","current_stock":"50","reorderThreshold":60}]}`,
	"/parties":  `{"parties":[{"id":"p1","type":"customer"},{"id":"p2","type":"supplier"}]}`,
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func upstream(url string) config.UpstreamConfig {
	return config.UpstreamConfig{BaseURL: url, Timeout: 2 * time.Second, BreakerFailures: 2, BreakerTimeout: time.Minute}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestLoadInputs_NormalizaLasCuatroColecciones(t *testing.T) {
	srv := newServer(t)
	c := bff.New(upstream(srv.URL), nil, nil, metrics.New("test"))

	in, err := c.LoadInputs(context.Background())
	require.NoError(t, err)
	require.Len(t, in.Invoices, 3)
	require.Len(t, in.Payments, 1)
	require.Len(t, in.Items, 2)
	require.Len(t, in.Parties, 2)

	stats := dashboard.ComputeStats(in)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(stats.TotalSales), stats.TotalSales.String())
	assert.True(t, decimal.RequireFromString("300").Equal(stats.TotalPurchases))
	assert.True(t, decimal.RequireFromString("400.25").Equal(stats.Receivables), stats.Receivables.String())
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.CustomersCount)
}

func TestFetch_EstadoNo2xxEsErrUpstream(t *testing.T) {
	srv := newServer(t)
	c := bff.New(upstream(srv.URL), nil, nil, nil)

	_, err := c.Fetch(context.Background(), "desconocido")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestFetch_BreakerSeAbreTrasFallosConsecutivos(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := bff.New(upstream(srv.URL), nil, nil, nil)
	for i := 0; i < 2; i++ {
		_, err := c.Fetch(context.Background(), bff.ResourceInvoices)
		require.ErrorIs(t, err, domain.ErrUpstream)
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.Fetch(context.Background(), bff.ResourceInvoices)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "con el circuito abierto no se llama al BFF")
}

func TestLoadInputs_FalloDeUnRecursoFallaLaCarga(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/payments" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := bff.New(upstream(srv.URL), nil, nil, nil)
	_, err := c.LoadInputs(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestLoadInputs_UnRecursoCaidoNoAbreElBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/invoices" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := upstream(srv.URL)
	cfg.BreakerFailures = 2
	c := bff.New(cfg, nil, nil, nil)

	_, err := c.LoadInputs(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestFetch_CancelacionDelLlamadorNoCuentaComoFallo(t *testing.T) {
	srv := newServer(t)
	c := bff.New(upstream(srv.URL), nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		_, err := c.Fetch(ctx, bff.ResourceItems)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}
