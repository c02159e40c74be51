package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
)

var _ repository.DashboardSource = (*DashboardRepo)(nil)

// DashboardRepo carga las colecciones completas del tablero desde la base propia.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de solo lectura.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// LoadInputs ejecuta las cuatro consultas en paralelo; si una falla se cancelan las demás.
func (r *DashboardRepo) LoadInputs(ctx context.Context) (dashboard.Inputs, error) {
	var in dashboard.Inputs
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := NewInvoiceRepository(r.pool).List(ctx, repository.InvoiceFilter{})
		if err != nil {
			return fmt.Errorf("dashboard: facturas: %w", err)
		}
		in.Invoices = values(list)
		return nil
	})
	g.Go(func() error {
		list, err := NewPaymentRepository(r.pool).List(ctx, repository.PaymentFilter{})
		if err != nil {
			return fmt.Errorf("dashboard: pagos: %w", err)
		}
		in.Payments = values(list)
		return nil
	})
	g.Go(func() error {
		list, err := NewItemRepository(r.pool).List(ctx, 0, 0)
		if err != nil {
			return fmt.Errorf("dashboard: ítems: %w", err)
		}
		in.Items = values(list)
		return nil
	})
	g.Go(func() error {
		list, err := NewPartyRepository(r.pool).List(ctx, repository.PartyFilter{})
		if err != nil {
			return fmt.Errorf("dashboard: terceros: %w", err)
		}
		in.Parties = values(list)
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.Inputs{}, err
	}
	return in, nil
}

func values[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, p := range in {
		out = append(out, *p)
	}
	return out
}
