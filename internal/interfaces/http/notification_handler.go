package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/dto"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
)

// NotificationHandler expone las alertas derivadas del inventario.
type NotificationHandler struct {
	store *inventory.Store
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(store *inventory.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List godoc
// @Summary      Notificaciones
// @Description  Más reciente primero, con el contador de no leídas.
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewNotificationList(h.store.Notifications()))
}

// ReadAll godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) ReadAll(c *fiber.Ctx) error {
	changed := h.store.MarkAllAsRead()
	return c.JSON(fiber.Map{"changed": changed, "unread": h.store.UnreadCount()})
}
