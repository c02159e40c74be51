package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gstbooks-api/internal/application/normalize"
	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/pkg/money"
)

func newDashboardCommand(root *rootOptions) *cobra.Command {
	var (
		file      string
		threshold string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Calcula las métricas del tablero sobre una instantánea JSON",
		Long: `La instantánea es un objeto con las colecciones invoices, payments,
items (o products) y parties (o contacts), tal como las devuelve el backend.`,
		Example: `  gstcalc dashboard -f snapshot.json
  gstcalc dashboard -f snapshot.json --reorder-threshold 5 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			agg := dashboard.Aggregator{}
			if threshold != "" {
				d, err := decimal.NewFromString(threshold)
				if err != nil || d.IsNegative() {
					return fmt.Errorf("--reorder-threshold inválido %q", threshold)
				}
				agg.ReorderThreshold = &d
			}
			raw, err := readJSONObject(cmd, file)
			if err != nil {
				return err
			}
			in := normalize.DashboardInputs(raw)
			stats := agg.Compute(in)
			root.log.Debug().
				Int("invoices", len(in.Invoices)).
				Int("payments", len(in.Payments)).
				Int("items", len(in.Items)).
				Int("parties", len(in.Parties)).
				Msg("tablero calculado")

			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), statsJSON(stats))
			}
			return printStats(cmd, stats)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo JSON con la instantánea (\"-\" para stdin)")
	cmd.Flags().StringVar(&threshold, "reorder-threshold", "", "umbral de stock bajo para ítems sin umbral propio (por defecto 10)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func statsJSON(s dashboard.Stats) map[string]any {
	return map[string]any{
		"total_sales":         s.TotalSales.StringFixed(2),
		"total_purchases":     s.TotalPurchases.StringFixed(2),
		"pending_amount":      s.PendingAmount.StringFixed(2),
		"receivables":         s.Receivables.StringFixed(2),
		"payments_received":   s.PaymentsReceived.StringFixed(2),
		"low_stock_count":     s.LowStockCount,
		"total_parties_count": s.TotalPartiesCount,
		"customers_count":     s.CustomersCount,
		"suppliers_count":     s.SuppliersCount,
		"total_items_count":   s.TotalItemsCount,
		"invoices_count":      s.InvoicesCount,
		"paid_invoices_count": s.PaidInvoicesCount,
	}
}

func printStats(cmd *cobra.Command, s dashboard.Stats) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ventas\t%s\n", money.FormatINR(s.TotalSales))
	fmt.Fprintf(tw, "Compras\t%s\n", money.FormatINR(s.TotalPurchases))
	fmt.Fprintf(tw, "Pendiente\t%s\n", money.FormatINR(s.PendingAmount))
	fmt.Fprintf(tw, "Por cobrar\t%s\n", money.FormatINR(s.Receivables))
	fmt.Fprintf(tw, "Pagos recibidos\t%s\n", money.FormatINR(s.PaymentsReceived))
	fmt.Fprintf(tw, "Stock bajo\t%d\n", s.LowStockCount)
	fmt.Fprintf(tw, "Terceros\t%d (%d clientes, %d proveedores)\n", s.TotalPartiesCount, s.CustomersCount, s.SuppliersCount)
	fmt.Fprintf(tw, "Ítems\t%d\n", s.TotalItemsCount)
	fmt.Fprintf(tw, "Facturas\t%d (%d pagadas)\n", s.InvoicesCount, s.PaidInvoicesCount)
	return tw.Flush()
}
