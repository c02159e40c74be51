package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
)

// PaymentHandler registro y consulta de pagos.
type PaymentHandler struct {
	svc   PaymentService
	pager Pager
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(svc PaymentService, pager Pager) *PaymentHandler {
	if pager == nil {
		pager = defaultPager{}
	}
	return &PaymentHandler{svc: svc, pager: pager}
}

// Record godoc
// @Summary      Registrar pago de una factura
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.svc.Record(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/payments?invoice_id=&limit=&offset=
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if e := parseQuery(c, &page); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	eff := pageOf(h.pager, page.Limit, page.Offset)
	list, err := h.svc.List(c.UserContext(), c.Query("invoice_id"), eff.Limit, eff.Offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(listResponse(list, eff))
}
