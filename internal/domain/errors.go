package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrUpstream      = errors.New("servicio externo no disponible")
	ErrOverpayment   = errors.New("el pago excede el saldo pendiente de la factura")
	ErrInvoiceClosed = errors.New("la factura no admite pagos en su estado actual")

	ErrInsufficientStock = errors.New("stock insuficiente")
)
