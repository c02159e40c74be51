// Package appstate contiene el estado de la aplicación que antes vivía en
// variables globales: perfil del negocio, umbral de stock bajo y paginación.
// Se construye una vez en main y se inyecta en casos de uso y handlers.
package appstate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
	"github.com/jhoicas/gstbooks-api/pkg/config"
	"github.com/jhoicas/gstbooks-api/pkg/gstin"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Business perfil del negocio que emite las facturas.
type Business struct {
	Name      string
	GSTIN     string
	StateCode string
}

// State valor inmutable compartido por la aplicación.
type State struct {
	Business         Business
	ReorderThreshold decimal.Decimal
	PageLimit        int
	MaxPageLimit     int
}

// New construye el estado desde la configuración. Un GSTIN configurado debe ser válido;
// si no hay código de estado explícito se deriva del GSTIN.
func New(cfg *config.Config) (*State, error) {
	b := Business{
		Name:      cfg.Business.Name,
		GSTIN:     gstin.Normalize(cfg.Business.GSTIN),
		StateCode: cfg.Business.StateCode,
	}
	if b.GSTIN != "" {
		if err := gstin.Validate(b.GSTIN); err != nil {
			return nil, fmt.Errorf("appstate: BUSINESS_GSTIN: %w", err)
		}
		if b.StateCode == "" {
			b.StateCode = gstin.StateCode(b.GSTIN)
		}
	}
	if b.StateCode != "" && !gstin.ValidStateCode(b.StateCode) {
		return nil, fmt.Errorf("appstate: BUSINESS_STATE_CODE desconocido %q", b.StateCode)
	}

	threshold := dashboard.DefaultReorderThreshold()
	if cfg.Dashboard.ReorderThreshold != "" {
		d, err := decimal.NewFromString(cfg.Dashboard.ReorderThreshold)
		if err != nil || d.IsNegative() {
			return nil, fmt.Errorf("appstate: DASHBOARD_REORDER_THRESHOLD inválido %q", cfg.Dashboard.ReorderThreshold)
		}
		threshold = d
	}

	return &State{
		Business:         b,
		ReorderThreshold: threshold,
		PageLimit:        DefaultPageLimit,
		MaxPageLimit:     MaxPageLimit,
	}, nil
}

// IsInterState decide el tipo de operación frente al estado del tercero.
func (s *State) IsInterState(partyStateCode string) bool {
	return gst.IsInterState(s.Business.StateCode, partyStateCode)
}

// Page normaliza limit/offset contra los valores por defecto.
func (s *State) Page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.PageLimit
	}
	if limit > s.MaxPageLimit {
		limit = s.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
