// Package cli implementa gstcalc: el calculador de totales GST y el tablero
// ejecutados fuera de línea sobre archivos JSON exportados del backend.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

var version = "1.0.0"

// Formatos de salida.
const (
	outputText = "text"
	outputJSON = "json"
)

type rootOptions struct {
	output   string
	logLevel string
	log      *logger.Logger
}

// NewRootCommand construye el árbol de comandos. stdin se usa cuando el archivo es "-".
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "gstcalc",
		Short: "Calculadora GST y tablero de resumen sobre archivos JSON",
		Long: `gstcalc ejecuta los mismos cálculos que la API sin base de datos:

  totals     totales de una factura (subtotal, descuentos, CGST/SGST o IGST, total)
  dashboard  métricas del tablero sobre una instantánea de facturas, pagos, ítems y terceros

Los archivos admiten claves snake_case o camelCase y montos como número o texto.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("--output debe ser %s o %s", outputText, outputJSON)
			}
			opts.log = logger.New(logger.Config{Env: "development", Level: opts.logLevel, Output: stderr}).Component("gstcalc")
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "formato de salida: text | json")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "nivel de log (debug, info, warn, error)")

	root.AddCommand(newTotalsCommand(opts), newDashboardCommand(opts))
	return root
}

// Execute ejecuta gstcalc con los streams del proceso.
func Execute() {
	cmd := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readJSONObject lee un objeto JSON desde path ("-" = stdin). Los números se conservan
// como json.Number para no perder precisión antes de pasar a decimal.
func readJSONObject(cmd *cobra.Command, path string) (map[string]any, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("leer JSON de %s: %w", path, err)
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
