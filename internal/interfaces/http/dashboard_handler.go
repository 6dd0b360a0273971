package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del panel de control.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores del almacén.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_value, critical_items, unread_notifications,
// expiring_soon, daily_usage[7], top_consumed[5], low_stock).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(summary)
}
