package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
)

// PartyHandler maneja las peticiones HTTP de terceros (clientes y proveedores).
type PartyHandler struct {
	svc   PartyService
	pager Pager
}

// NewPartyHandler construye el handler.
func NewPartyHandler(svc PartyService, pager Pager) *PartyHandler {
	if pager == nil {
		pager = defaultPager{}
	}
	return &PartyHandler{svc: svc, pager: pager}
}

// Create godoc
// @Summary      Crear tercero
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Datos del tercero"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parties [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/parties/:id
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "tercero no encontrado")
	}
	return c.JSON(out)
}

// List GET /api/parties?type=customer&limit=20&offset=0
func (h *PartyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if e := parseQuery(c, &page); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	eff := pageOf(h.pager, page.Limit, page.Offset)
	list, err := h.svc.List(c.UserContext(), c.Query("type"), eff.Limit, eff.Offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(listResponse(list, eff))
}
