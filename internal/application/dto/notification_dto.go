package dto

import (
	"time"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// NotificationResponse notificación derivada del inventario.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // critical | warning | info | success
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

// NotificationListResponse salida de GET /api/notifications.
type NotificationListResponse struct {
	Unread        int                    `json:"unread"`
	Notifications []NotificationResponse `json:"notifications"`
}

// NewNotificationList mapea la secuencia de notificaciones.
func NewNotificationList(ns []entity.AppNotification) NotificationListResponse {
	out := NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(ns))}
	for _, n := range ns {
		if !n.IsRead {
			out.Unread++
		}
		out.Notifications = append(out.Notifications, NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Timestamp: n.Timestamp,
			IsRead:    n.IsRead,
		})
	}
	return out
}
