// Package inventory contiene el contenedor de estado del almacén: productos, historial
// de consumo y notificaciones. Es la única fuente de verdad de la sesión; las vistas
// reciben copias.
package inventory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/alert"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
	domaininv "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/inventory"
)

// Store guarda el inventario en memoria. Toda mutación confirmada recalcula las
// alertas dentro del mismo bloqueo, así ninguna lectura observa alertas desfasadas.
type Store struct {
	mu            sync.RWMutex
	items         map[string]entity.InventoryItem
	order         []string // orden de inserción de los productos
	history       []entity.UsageHistory
	notifications []entity.AppNotification

	alertOpts alert.Options
	metrics   MetricsRecorder
	now       func() time.Time
	newID     func() string
}

// StoreOption configura el Store.
type StoreOption func(*Store)

// WithClock sustituye el reloj (tests).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithAlertOptions ajusta la derivación de alertas.
func WithAlertOptions(opts alert.Options) StoreOption {
	return func(s *Store) { s.alertOpts = opts }
}

// WithMetrics inyecta el registrador de métricas.
func WithMetrics(m MetricsRecorder) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// WithIDGenerator sustituye el generador de IDs (tests).
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

// NewStore construye un Store vacío.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		items:     make(map[string]entity.InventoryItem),
		alertOpts: alert.DefaultOptions(),
		metrics:   NopMetrics{},
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot copia coherente de todo el estado, tomada bajo un único bloqueo.
type Snapshot struct {
	Items         []entity.InventoryItem
	History       []entity.UsageHistory
	Notifications []entity.AppNotification
	TakenAt       time.Time
}

// UpsertItemInput datos para crear o reemplazar un producto.
// ID vacío crea un producto nuevo con ID generado.
type UpsertItemInput struct {
	ID           string
	Name         string
	Category     string
	Quantity     decimal.Decimal
	Unit         string
	MinThreshold decimal.Decimal
	ExpiryDate   *time.Time
	PricePerUnit *decimal.Decimal
}

// Seed reemplaza el estado con la semilla de arranque y ejecuta la primera derivación.
// usage debe venir ordenado del más reciente al más antiguo.
func (s *Store) Seed(items []entity.InventoryItem, usage []entity.UsageHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]entity.InventoryItem, len(items))
	s.order = s.order[:0]
	for _, it := range items {
		if _, dup := s.items[it.ID]; !dup {
			s.order = append(s.order, it.ID)
		}
		s.items[it.ID] = it.Clone()
	}
	s.history = append([]entity.UsageHistory(nil), usage...)
	s.notifications = nil
	s.deriveLocked()
}

// RecordUsage registra un consumo: resta quantity (con suelo en 0), actualiza
// LastUpdated y antepone una entrada al historial con el nombre y la unidad actuales.
//
// Retorna:
//   - domain.ErrInvalidInput si quantity <= 0 (no se modifica nada).
//   - domain.ErrNotFound     si el producto no existe (no se modifica nada).
func (s *Store) RecordUsage(itemID string, quantity decimal.Decimal) (*entity.UsageHistory, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		s.metrics.OperationRejected("record_usage", "invalid_quantity")
		return nil, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		s.metrics.OperationRejected("record_usage", "not_found")
		return nil, domain.ErrNotFound
	}

	now := s.now()
	remaining := item.Quantity.Sub(quantity)
	if remaining.LessThan(decimal.Zero) {
		remaining = decimal.Zero
	}
	item.Quantity = remaining
	item.LastUpdated = now
	s.items[itemID] = item

	entry := entity.UsageHistory{
		ID:               s.newID(),
		ItemID:           item.ID,
		ItemName:         item.Name,
		Date:             now,
		QuantityConsumed: quantity,
		Unit:             item.Unit,
	}
	history := make([]entity.UsageHistory, 0, len(s.history)+1)
	history = append(history, entry)
	s.history = append(history, s.history...)

	s.metrics.UsageRecorded()
	s.deriveLocked()
	return &entry, nil
}

// RemoveItem elimina el producto si existe. El historial no se toca.
// Devuelve false si el producto no existía.
func (s *Store) RemoveItem(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return false
	}
	delete(s.items, itemID)
	order := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if id != itemID {
			order = append(order, id)
		}
	}
	s.order = order
	s.deriveLocked()
	return true
}

// UpsertItem crea o reemplaza un producto. Es el punto de entrada para altas manuales
// y para volcar datos revisados de un análisis externo (ticket, foto de despensa).
// Un producto existente conserva su posición en el inventario. created indica si el ID
// (ya recortado) no existía.
func (s *Store) UpsertItem(in UpsertItemInput) (*entity.InventoryItem, bool, error) {
	if err := validateUpsert(in); err != nil {
		s.metrics.OperationRejected("upsert_item", "invalid_input")
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = s.newID()
	}
	item := entity.InventoryItem{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		Quantity:     in.Quantity,
		Unit:         strings.TrimSpace(in.Unit),
		MinThreshold: in.MinThreshold,
		ExpiryDate:   in.ExpiryDate,
		PricePerUnit: in.PricePerUnit,
		LastUpdated:  s.now(),
	}.Clone()

	_, exists := s.items[id]
	if !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = item
	s.deriveLocked()

	out := item.Clone()
	return &out, !exists, nil
}

func validateUpsert(in UpsertItemInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity.LessThan(decimal.Zero) || in.MinThreshold.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.PricePerUnit != nil && in.PricePerUnit.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// MarkAllAsRead marca todas las notificaciones como leídas. No afecta al inventario.
// Devuelve cuántas cambiaron.
func (s *Store) MarkAllAsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int
	s.notifications, changed = alert.MarkAllAsRead(s.notifications)
	s.reportAlertsLocked()
	return changed
}

// Items copia del inventario en orden de inserción.
func (s *Store) Items() []entity.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked()
}

// Item devuelve una copia del producto o domain.ErrNotFound.
func (s *Store) Item(id string) (*entity.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := it.Clone()
	return &out, nil
}

// History copia del historial (más reciente primero). limit <= 0 devuelve todo.
func (s *Store) History(limit int) []entity.UsageHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]entity.UsageHistory(nil), s.history[:n]...)
}

// Notifications copia de la secuencia de notificaciones (más reciente primero).
func (s *Store) Notifications() []entity.AppNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.AppNotification(nil), s.notifications...)
}

// UnreadCount número de notificaciones sin leer.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return alert.UnreadCount(s.notifications)
}

// Snapshot devuelve inventario, historial y notificaciones tomados a la vez.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Items:         s.itemsLocked(),
		History:       append([]entity.UsageHistory(nil), s.history...),
		Notifications: append([]entity.AppNotification(nil), s.notifications...),
		TakenAt:       s.now(),
	}
}

func (s *Store) itemsLocked() []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// deriveLocked ejecuta una pasada de derivación. Requiere s.mu tomado en escritura.
func (s *Store) deriveLocked() {
	items := s.itemsLocked()
	s.notifications = alert.Derive(items, s.notifications, s.now(), s.alertOpts)
	s.metrics.InventorySize(len(items))
	s.reportAlertsLocked()
}

func (s *Store) reportAlertsLocked() {
	lowStock := 0
	for _, it := range s.items {
		if it.IsLowStock() {
			lowStock++
		}
	}
	s.metrics.AlertsDerived(len(s.notifications), alert.UnreadCount(s.notifications), lowStock)
}

// LowStockItems productos en condición de stock bajo, en orden de inventario.
func (s *Store) LowStockItems() []entity.InventoryItem {
	return domaininv.LowStock(s.Items())
}
