package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// Metrics indicadores del almacén para el panel de control.
type Metrics struct {
	TotalValue    decimal.Decimal // Σ cantidad × precio unitario
	CriticalItems int             // productos en o bajo el umbral mínimo
	ExpiringSoon  int             // caducan en o antes del fin de la ventana (o ya caducados)
	ItemCount     int
}

// ComputeMetrics calcula los indicadores sobre una instantánea del inventario.
func ComputeMetrics(items []entity.InventoryItem, now time.Time, window time.Duration) Metrics {
	m := Metrics{TotalValue: decimal.Zero, ItemCount: len(items)}
	for _, it := range items {
		m.TotalValue = m.TotalValue.Add(it.StockValue())
		if it.IsLowStock() {
			m.CriticalItems++
		}
		if it.ExpiresWithin(now, window) {
			m.ExpiringSoon++
		}
	}
	return m
}

// LowStock devuelve los productos en condición de stock bajo, en el orden recibido.
func LowStock(items []entity.InventoryItem) []entity.InventoryItem {
	var out []entity.InventoryItem
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}
