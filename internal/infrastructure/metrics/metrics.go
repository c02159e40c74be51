// Package metrics expone las métricas Prometheus del servicio.
// Todos los métodos Record* aceptan un receptor nil para que los casos de uso
// funcionen sin métricas en tests y en la CLI.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
)

const namespace = "gstbooks"

// Metrics agrupa los collectors registrados en un registry propio.
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	InvoiceCalculations *prometheus.CounterVec
	InvoicesCreated     *prometheus.CounterVec
	PaymentsRecorded    *prometheus.CounterVec

	DashboardLoads        *prometheus.CounterVec
	DashboardLoadDuration *prometheus.HistogramVec

	UpstreamRequests    *prometheus.CounterVec
	CircuitBreakerState *prometheus.GaugeVec
}

// New crea el registry con los collectors estándar de Go y proceso.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{serviceName: serviceName, registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"service", "method", "path"},
	)
	m.InvoiceCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_calculations_total",
			Help:      "Cálculos de totales GST por resultado",
		},
		[]string{"service", "result"},
	)
	m.InvoicesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Facturas persistidas por tipo y régimen",
		},
		[]string{"service", "invoice_type", "supply"},
	)
	m.PaymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Pagos registrados por medio de pago",
		},
		[]string{"service", "mode"},
	)
	m.DashboardLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_loads_total",
			Help:      "Cargas del tablero por fuente y estado",
		},
		[]string{"service", "source", "status"},
	)
	m.DashboardLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_load_duration_seconds",
			Help:      "Duración de la carga de colecciones del tablero",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "source"},
	)
	m.UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Peticiones al BFF de contabilidad por recurso y estado",
		},
		[]string{"service", "resource", "status"},
	)
	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Estado del circuit breaker (0=cerrado, 1=semiabierto, 2=abierto)",
		},
		[]string{"service", "name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.InvoiceCalculations, m.InvoicesCreated, m.PaymentsRecorded,
		m.DashboardLoads, m.DashboardLoadDuration,
		m.UpstreamRequests, m.CircuitBreakerState,
	)
	return m
}

// Handler devuelve el handler HTTP de exposición.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry devuelve el registry de Prometheus.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest registra una petición HTTP.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordCalculation registra un cálculo; los errores de validación se etiquetan con su tipo.
func (m *Metrics) RecordCalculation(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
		var verr *gst.ValidationError
		if errors.As(err, &verr) {
			result = string(verr.Kind)
		}
	}
	m.InvoiceCalculations.WithLabelValues(m.serviceName, result).Inc()
}

// RecordInvoiceCreated registra una factura persistida.
func (m *Metrics) RecordInvoiceCreated(invoiceType string, interState bool) {
	if m == nil {
		return
	}
	supply := "intra_state"
	if interState {
		supply = "inter_state"
	}
	m.InvoicesCreated.WithLabelValues(m.serviceName, invoiceType, supply).Inc()
}

// RecordPayment registra un pago aplicado.
func (m *Metrics) RecordPayment(mode string) {
	if m == nil {
		return
	}
	m.PaymentsRecorded.WithLabelValues(m.serviceName, mode).Inc()
}

// RecordDashboardLoad registra una carga de colecciones del tablero.
func (m *Metrics) RecordDashboardLoad(source string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.DashboardLoads.WithLabelValues(m.serviceName, source, status(success)).Inc()
	m.DashboardLoadDuration.WithLabelValues(m.serviceName, source).Observe(duration.Seconds())
}

// RecordUpstreamRequest registra una petición al BFF.
func (m *Metrics) RecordUpstreamRequest(resource string, success bool) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(m.serviceName, resource, status(success)).Inc()
}

// SetCircuitBreakerState publica el estado numérico del breaker.
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(m.serviceName, name).Set(float64(state))
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
