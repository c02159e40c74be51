package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
)

// ItemHandler maneja las peticiones HTTP de ítems de inventario.
type ItemHandler struct {
	svc   ItemService
	pager Pager
}

// NewItemHandler construye el handler.
func NewItemHandler(svc ItemService, pager Pager) *ItemHandler {
	if pager == nil {
		pager = defaultPager{}
	}
	return &ItemHandler{svc: svc, pager: pager}
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.ItemResponse]
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if e := parseQuery(c, &page); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	eff := pageOf(h.pager, page.Limit, page.Offset)
	list, err := h.svc.List(c.UserContext(), eff.Limit, eff.Offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(listResponse(list, eff))
}

// LowStock godoc
// @Summary      Ítems en o bajo su umbral de reposición
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ItemResponse]
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.svc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(listResponse(list, nil))
}
