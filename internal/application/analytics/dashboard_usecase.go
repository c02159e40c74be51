// Package analytics contiene el caso de uso del tablero de resumen.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
	"github.com/jhoicas/gstbooks-api/pkg/money"
)

// DashboardUseCase carga las colecciones desde la fuente configurada y calcula las métricas.
//
// Fuente de datos: DashboardSource (repositorios propios o BFF externo), siempre read-only.
// El cálculo es puro; aquí solo se mide, se registra y se arma el DTO.
type DashboardUseCase struct {
	source     repository.DashboardSource
	sourceName string
	state      *appstate.State
	metrics    *metrics.Metrics
	log        *logger.Logger
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso. sourceName se reporta en la respuesta y en métricas.
func NewDashboardUseCase(
	source repository.DashboardSource,
	sourceName string,
	state *appstate.State,
	m *metrics.Metrics,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		source:     source,
		sourceName: sourceName,
		state:      state,
		metrics:    m,
		log:        log.Component("dashboard"),
		now:        time.Now,
	}
}

// GetStats carga las cuatro colecciones y devuelve el resumen.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	start := time.Now()
	in, err := uc.source.LoadInputs(ctx)
	uc.metrics.RecordDashboardLoad(uc.sourceName, err == nil, time.Since(start))
	if err != nil {
		uc.log.Error().Err(err).Str("source", uc.sourceName).Msg("no se pudieron cargar los datos del tablero")
		return nil, fmt.Errorf("dashboard: cargar datos: %w", err)
	}

	stats := dashboard.Aggregator{ReorderThreshold: &uc.state.ReorderThreshold}.Compute(in)

	uc.log.Debug().
		Str("source", uc.sourceName).
		Int("invoices", len(in.Invoices)).
		Int("payments", len(in.Payments)).
		Int("items", len(in.Items)).
		Int("parties", len(in.Parties)).
		Dur("elapsed", time.Since(start)).
		Msg("tablero calculado")

	return toStatsDTO(stats, uc.sourceName, uc.now()), nil
}

func toStatsDTO(s dashboard.Stats, source string, at time.Time) *dto.DashboardStatsDTO {
	return &dto.DashboardStatsDTO{
		TotalSales:       s.TotalSales,
		TotalPurchases:   s.TotalPurchases,
		PendingAmount:    s.PendingAmount,
		Receivables:      s.Receivables,
		PaymentsReceived: s.PaymentsReceived,
		Formatted: map[string]string{
			"total_sales":       money.FormatINR(s.TotalSales),
			"total_purchases":   money.FormatINR(s.TotalPurchases),
			"pending_amount":    money.FormatINR(s.PendingAmount),
			"receivables":       money.FormatINR(s.Receivables),
			"payments_received": money.FormatINR(s.PaymentsReceived),
		},
		LowStockCount:     s.LowStockCount,
		TotalPartiesCount: s.TotalPartiesCount,
		CustomersCount:    s.CustomersCount,
		SuppliersCount:    s.SuppliersCount,
		TotalItemsCount:   s.TotalItemsCount,
		InvoicesCount:     s.InvoicesCount,
		PaidInvoicesCount: s.PaidInvoicesCount,
		Source:            source,
		GeneratedAt:       at.UTC().Format(time.RFC3339),
	}
}
