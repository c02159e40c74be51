package http

import (
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	svc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetStats godoc
// @Summary      Resumen del tablero
// @Description  Ventas, compras, pendiente, por cobrar, pagos recibidos y conteos de ítems, terceros y facturas.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(stats)
}
