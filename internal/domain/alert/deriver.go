// Package alert deriva las notificaciones del inventario.
//
// Cada pasada de derivación recorre el inventario completo y fusiona los candidatos con
// la secuencia existente: los IDs nuevos se anteponen y los ya presentes no se tocan,
// de modo que el estado IsRead y la marca de tiempo original sobreviven al recálculo.
package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

const (
	// LowStockPrefix prefijo de las alertas de stock crítico ("alert-<itemID>").
	LowStockPrefix = "alert-"
	// ExpiryPrefix prefijo de las alertas de caducidad ("expiry-<itemID>").
	ExpiryPrefix = "expiry-"

	// DefaultExpiryWindow ventana de "próximo a caducar".
	DefaultExpiryWindow = 7 * 24 * time.Hour
)

// Options ajusta una pasada de derivación.
type Options struct {
	// PruneResolved elimina las alertas derivadas cuya condición ya no se cumple.
	// Desactivado por defecto: las alertas resueltas permanecen en la secuencia.
	PruneResolved bool
	// ExpiryAlerts añade las alertas "expiry-<id>". Desactivado por defecto: solo se
	// derivan las alertas de stock crítico.
	ExpiryAlerts bool
	// ExpiryWindow ventana de caducidad próxima; cero desactiva esas alertas.
	ExpiryWindow time.Duration
}

// DefaultOptions conserva las alertas resueltas y solo deriva alertas de stock crítico.
func DefaultOptions() Options {
	return Options{ExpiryWindow: DefaultExpiryWindow}
}

// LowStockID ID determinista de la alerta de stock crítico de un producto.
func LowStockID(itemID string) string { return LowStockPrefix + itemID }

// ExpiryID ID determinista de la alerta de caducidad de un producto.
func ExpiryID(itemID string) string { return ExpiryPrefix + itemID }

// Candidates devuelve las alertas que el inventario justifica ahora mismo,
// en el orden de los productos.
func Candidates(items []entity.InventoryItem, now time.Time, opts Options) []entity.AppNotification {
	var out []entity.AppNotification
	for _, item := range items {
		if item.IsLowStock() {
			out = append(out, entity.AppNotification{
				ID:    LowStockID(item.ID),
				Type:  entity.NotificationCritical,
				Title: "Stock Crítico",
				Message: fmt.Sprintf("El producto %s ha alcanzado el umbral mínimo (%s %s restantes).",
					item.Name, item.Quantity.String(), item.Unit),
				Timestamp: now,
			})
		}
		if !opts.ExpiryAlerts {
			continue
		}
		if n, ok := expiryCandidate(item, now, opts.ExpiryWindow); ok {
			out = append(out, n)
		}
	}
	return out
}

func expiryCandidate(item entity.InventoryItem, now time.Time, window time.Duration) (entity.AppNotification, bool) {
	if !item.ExpiresWithin(now, window) {
		return entity.AppNotification{}, false
	}
	expiry := *item.ExpiryDate
	n := entity.AppNotification{
		ID:        ExpiryID(item.ID),
		Type:      entity.NotificationWarning,
		Title:     "Caducidad Próxima",
		Message:   fmt.Sprintf("El producto %s caduca el %s.", item.Name, expiry.Format("02/01/2006")),
		Timestamp: now,
	}
	// Un producto que caduca hoy aún no está caducado.
	if expiry.Before(startOfDay(now)) {
		n.Type = entity.NotificationCritical
		n.Title = "Producto Caducado"
		n.Message = fmt.Sprintf("El producto %s caducó el %s.", item.Name, expiry.Format("02/01/2006"))
	}
	return n, true
}

// Derive ejecuta una pasada completa sobre el inventario y devuelve la nueva secuencia.
//
// Los candidatos cuyo ID no existe se anteponen (más recientes primero); los existentes
// se conservan tal cual. existing no se modifica.
func Derive(
	items []entity.InventoryItem,
	existing []entity.AppNotification,
	now time.Time,
	opts Options,
) []entity.AppNotification {
	candidates := Candidates(items, now, opts)

	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[n.ID] = struct{}{}
	}
	live := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		live[c.ID] = struct{}{}
	}

	out := make([]entity.AppNotification, 0, len(candidates)+len(existing))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; !ok {
			out = append(out, c)
		}
	}
	for _, n := range existing {
		if opts.PruneResolved && isDerived(n.ID) {
			if _, ok := live[n.ID]; !ok {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// MarkAllAsRead devuelve una copia con IsRead=true en todas las notificaciones
// y el número de notificaciones que cambiaron.
func MarkAllAsRead(notifications []entity.AppNotification) ([]entity.AppNotification, int) {
	out := make([]entity.AppNotification, len(notifications))
	changed := 0
	for i, n := range notifications {
		if !n.IsRead {
			n.IsRead = true
			changed++
		}
		out[i] = n
	}
	return out, changed
}

// UnreadCount cuenta las notificaciones pendientes de leer.
func UnreadCount(notifications []entity.AppNotification) int {
	c := 0
	for _, n := range notifications {
		if !n.IsRead {
			c++
		}
	}
	return c
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isDerived(id string) bool {
	return strings.HasPrefix(id, LowStockPrefix) || strings.HasPrefix(id, ExpiryPrefix)
}
