package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gstbooks-api/internal/application/normalize"
	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
	"github.com/jhoicas/gstbooks-api/pkg/money"
)

type totalsOptions struct {
	file          string
	interState    bool
	businessState string
	partyState    string
}

func newTotalsCommand(root *rootOptions) *cobra.Command {
	opts := &totalsOptions{}
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Calcula los totales GST de una factura",
		Example: `  gstcalc totals -f invoice.json
  gstcalc totals -f invoice.json --inter-state
  gstcalc totals -f invoice.json --business-state 27 --party-state 29 -o json
  cat invoice.json | gstcalc totals -f -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readJSONObject(cmd, opts.file)
			if err != nil {
				return err
			}
			ictx := normalize.InvoiceContext(raw)
			switch {
			case cmd.Flags().Changed("inter-state"):
				ictx.IsInterState = opts.interState
			case opts.businessState != "" && opts.partyState != "":
				ictx.IsInterState = gst.IsInterState(opts.businessState, opts.partyState)
			}

			totals, err := gst.ComputeInvoiceTotals(ictx)
			if err != nil {
				return err
			}
			root.log.Debug().
				Int("lines", len(ictx.LineItems)).
				Bool("inter_state", ictx.IsInterState).
				Str("grand_total", totals.GrandTotal.StringFixed(2)).
				Msg("totales calculados")

			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), totalsJSON(ictx.IsInterState, totals))
			}
			return printTotals(cmd.OutOrStdout(), ictx.IsInterState, totals)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "archivo JSON de la factura (\"-\" para stdin)")
	cmd.Flags().BoolVar(&opts.interState, "inter-state", false, "fuerza operación interestatal (IGST)")
	cmd.Flags().StringVar(&opts.businessState, "business-state", "", "código de estado del negocio")
	cmd.Flags().StringVar(&opts.partyState, "party-state", "", "código de estado del tercero")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type totalsOutput struct {
	IsInterState  bool           `json:"is_inter_state"`
	Subtotal      string         `json:"subtotal"`
	TotalDiscount string         `json:"total_discount"`
	TaxableAmount string         `json:"taxable_amount"`
	CGST          string         `json:"cgst"`
	SGST          string         `json:"sgst"`
	IGST          string         `json:"igst"`
	GrandTotal    string         `json:"grand_total"`
	Formatted     string         `json:"grand_total_formatted"`
	Buckets       []bucketOutput `json:"tax_breakup"`
}

type bucketOutput struct {
	RatePercent string `json:"rate_percent"`
	Taxable     string `json:"taxable"`
	CGST        string `json:"cgst"`
	SGST        string `json:"sgst"`
	IGST        string `json:"igst"`
}

func totalsJSON(interState bool, t gst.InvoiceTotals) totalsOutput {
	out := totalsOutput{
		IsInterState:  interState,
		Subtotal:      t.Subtotal.String(),
		TotalDiscount: t.TotalDiscount.String(),
		TaxableAmount: t.TaxableAmount.String(),
		CGST:          t.CGST.String(),
		SGST:          t.SGST.String(),
		IGST:          t.IGST.String(),
		GrandTotal:    t.GrandTotal.StringFixed(2),
		Formatted:     money.FormatINR(t.GrandTotal),
		Buckets:       make([]bucketOutput, 0, len(t.Buckets)),
	}
	for _, b := range t.Buckets {
		out.Buckets = append(out.Buckets, bucketOutput{
			RatePercent: b.RatePercent.String(),
			Taxable:     b.Taxable.String(),
			CGST:        b.CGST.String(),
			SGST:        b.SGST.String(),
			IGST:        b.IGST.String(),
		})
	}
	return out
}

func printTotals(w io.Writer, interState bool, t gst.InvoiceTotals) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	supply := "intraestatal (CGST + SGST)"
	if interState {
		supply = "interestatal (IGST)"
	}
	fmt.Fprintf(tw, "Operación\t%s\t\n", supply)
	fmt.Fprintf(tw, "Subtotal\t%s\t\n", money.Format(t.Subtotal))
	fmt.Fprintf(tw, "Descuento\t%s\t\n", money.Format(t.TotalDiscount))
	fmt.Fprintf(tw, "Base gravable\t%s\t\n", money.Format(t.TaxableAmount))
	if interState {
		fmt.Fprintf(tw, "IGST\t%s\t\n", money.Format(t.IGST))
	} else {
		fmt.Fprintf(tw, "CGST\t%s\t\n", money.Format(t.CGST))
		fmt.Fprintf(tw, "SGST\t%s\t\n", money.Format(t.SGST))
	}
	fmt.Fprintf(tw, "Total\t%s\t\n", money.FormatINR(t.GrandTotal))
	return tw.Flush()
}
