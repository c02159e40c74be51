package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	svc   InvoiceService
	pager Pager
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc InvoiceService, pager Pager) *InvoiceHandler {
	if pager == nil {
		pager = defaultPager{}
	}
	return &InvoiceHandler{svc: svc, pager: pager}
}

// Calculate godoc
// @Summary      Calcular totales GST sin guardar
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateInvoiceRequest  true  "Líneas y descuentos"
// @Success      200   {object}  dto.InvoiceTotalsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/calculate [post]
func (h *InvoiceHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateInvoiceRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.svc.Calculate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "tercero o ítem no encontrado")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Emitir factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Datos de la factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "tercero o ítem no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        invoice_type  query  string  false  "sale | purchase"
// @Param        status        query  string  false  "Estado"
// @Param        party_id      query  string  false  "Tercero"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.InvoiceResponse]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if e := parseQuery(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	page := pageOf(h.pager, in.Limit, in.Offset)
	in.Limit, in.Offset = page.Limit, page.Offset
	list, err := h.svc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(listResponse(list, page))
}
