package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un ingrediente o producto almacenado en la cocina.
// Quantity nunca es negativo: el consumo se recorta a cero.
type InventoryItem struct {
	ID           string
	Name         string
	Category     string
	Quantity     decimal.Decimal
	Unit         string          // kg, L, piezas, botellas...
	MinThreshold decimal.Decimal // nivel de reposición
	ExpiryDate   *time.Time      // fecha de caducidad (solo día), opcional
	PricePerUnit *decimal.Decimal
	LastUpdated  time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral mínimo.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinThreshold)
}

// StockValue devuelve Quantity * PricePerUnit (cero si no hay precio).
func (i InventoryItem) StockValue() decimal.Decimal {
	if i.PricePerUnit == nil {
		return decimal.Zero
	}
	return i.Quantity.Mul(*i.PricePerUnit)
}

// ExpiresWithin indica si el producto caduca en o antes de now+window (incluye los ya
// caducados). window <= 0 devuelve false.
func (i InventoryItem) ExpiresWithin(now time.Time, window time.Duration) bool {
	if window <= 0 || i.ExpiryDate == nil {
		return false
	}
	return !i.ExpiryDate.After(now.Add(window))
}

// Clone devuelve una copia sin punteros compartidos.
func (i InventoryItem) Clone() InventoryItem {
	out := i
	if i.ExpiryDate != nil {
		d := *i.ExpiryDate
		out.ExpiryDate = &d
	}
	if i.PricePerUnit != nil {
		p := *i.PricePerUnit
		out.PricePerUnit = &p
	}
	return out
}
