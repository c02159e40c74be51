package repository

import (
	"context"

	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
)

// DashboardSource carga las cuatro colecciones completas del tablero.
// Las implementaciones son read-only (base de datos propia o BFF externo).
type DashboardSource interface {
	LoadInputs(ctx context.Context) (dashboard.Inputs, error)
}
