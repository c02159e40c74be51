package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
)

// respondError traduce un error de dominio a status HTTP y dto.ErrorResponse.
// notFoundMsg personaliza el mensaje del 404.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var ve *gst.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := dto.ErrorResponse{Code: string(ve.Kind), Message: ve.Message}
		if ve.Line != gst.InvoiceLevel {
			line := ve.Line + 1
			resp.Line = &line
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrOverpayment):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvoiceClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVOICE_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: "el servicio de contabilidad no está disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
