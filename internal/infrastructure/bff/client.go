// Package bff es el cliente del backend de contabilidad (BFF) que expone las
// colecciones crudas de facturas, pagos, ítems y terceros. Las respuestas pasan
// por la capa de normalización antes de llegar al dominio.
package bff

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gstbooks-api/internal/application/normalize"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/config"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

var _ repository.DashboardSource = (*Client)(nil)

// Recursos del BFF; la clave coincide con el sobre de respuesta cuando lo hay.
const (
	ResourceInvoices = "invoices"
	ResourcePayments = "payments"
	ResourceItems    = "items"
	ResourceParties  = "parties"
)

const breakerName = "bff"

// maxBody límite de lectura por respuesta (16 MiB).
const maxBody = 16 << 20

// Client cliente HTTP con circuit breaker.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New construye el cliente. httpClient puede ser nil (se usa uno con cfg.Timeout).
func New(cfg config.UpstreamConfig, httpClient *http.Client, log *logger.Logger, m *metrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	failures := uint32(5)
	if cfg.BreakerFailures > 0 {
		failures = uint32(cfg.BreakerFailures)
	}
	c := &Client{baseURL: cfg.BaseURL, http: httpClient, log: log.Component("bff"), metrics: m}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Una petición cancelada (por el llamador o por un recurso hermano que falló) no es un fallo del BFF.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("name", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker cambió de estado")
			c.metrics.SetCircuitBreakerState(name, int(to))
		},
	})
	return c
}

// State estado actual del breaker.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

// LoadInputs trae las cuatro colecciones en paralelo y las normaliza.
func (c *Client) LoadInputs(ctx context.Context) (dashboard.Inputs, error) {
	var in dashboard.Inputs
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := c.Fetch(ctx, ResourceInvoices)
		in.Invoices = normalize.Invoices(normalize.Collection(raw, ResourceInvoices))
		return err
	})
	g.Go(func() error {
		raw, err := c.Fetch(ctx, ResourcePayments)
		in.Payments = normalize.Payments(normalize.Collection(raw, ResourcePayments))
		return err
	})
	g.Go(func() error {
		raw, err := c.Fetch(ctx, ResourceItems)
		in.Items = normalize.Items(normalize.Collection(raw, ResourceItems, "products"))
		return err
	})
	g.Go(func() error {
		raw, err := c.Fetch(ctx, ResourceParties)
		in.Parties = normalize.Parties(normalize.Collection(raw, ResourceParties))
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.Inputs{}, err
	}
	return in, nil
}

// Fetch hace GET {baseURL}/{resource} y decodifica el JSON conservando los números como json.Number.
// Cualquier fallo de red, estado no 2xx o breaker abierto se envuelve en domain.ErrUpstream.
func (c *Client) Fetch(ctx context.Context, resource string) (any, error) {
	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.get(ctx, resource)
	})
	c.metrics.RecordUpstreamRequest(resource, err == nil)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn().Str("resource", resource).Msg("circuit breaker abierto, petición descartada")
		}
		return nil, fmt.Errorf("bff %s: %w: %v", resource, domain.ErrUpstream, err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, resource string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+resource, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("leer respuesta: %w", err)
	}
	c.log.Debug().Str("resource", resource).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("respuesta del BFF")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("estado HTTP %d", resp.StatusCode)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decodificar JSON: %w", err)
	}
	return raw, nil
}
