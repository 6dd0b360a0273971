package entity

import "time"

// Severidades de notificación.
const (
	NotificationCritical = "critical"
	NotificationWarning  = "warning"
	NotificationInfo     = "info"
	NotificationSuccess  = "success"
)

// AppNotification es una alerta derivada del estado del inventario.
// El ID es determinista (p. ej. "alert-<itemID>") para que recalcular sea idempotente.
type AppNotification struct {
	ID        string
	Type      string
	Title     string
	Message   string
	Timestamp time.Time
	IsRead    bool
}
