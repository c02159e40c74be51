package gst

import (
	"fmt"

	"github.com/jhoicas/gstbooks-api/internal/domain"
)

// ErrorKind clasifica el motivo de una ValidationError.
type ErrorKind string

const (
	KindInvalidQuantity       ErrorKind = "InvalidQuantity"
	KindInvalidPrice          ErrorKind = "InvalidPrice"
	KindInvalidTaxRate        ErrorKind = "InvalidTaxRate"
	KindInvalidDiscount       ErrorKind = "InvalidDiscount"
	KindAmbiguousDiscountMode ErrorKind = "AmbiguousDiscountMode"
)

// InvoiceLevel es el índice de línea usado cuando el error pertenece al descuento global.
const InvoiceLevel = -1

// ValidationError describe una entrada inválida para el cálculo de totales.
// Line es el índice (base 0) de la línea afectada o InvoiceLevel.
type ValidationError struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line == InvoiceLevel {
		return fmt.Sprintf("gst: descuento de factura: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("gst: línea %d: %s: %s", e.Line+1, e.Kind, e.Message)
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func newValidationError(kind ErrorKind, line int, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
