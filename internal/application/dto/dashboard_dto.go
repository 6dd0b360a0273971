package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Indicadores del panel de control calculados sobre una instantánea del almacén.
type DashboardSummaryDTO struct {
	TotalValue          decimal.Decimal `json:"total_value"`          // Σ cantidad × precio unitario
	CriticalItems       int             `json:"critical_items"`       // productos en o bajo el mínimo
	UnreadNotifications int             `json:"unread_notifications"` // alertas sin leer
	ExpiringSoon        int             `json:"expiring_soon"`        // caducan en la ventana configurada
	ItemCount           int             `json:"item_count"`

	// Consumo diario de los últimos días (gráfico del panel), del más antiguo al más reciente.
	DailyUsage []DailyUsageDTO `json:"daily_usage"`

	// Productos con más registros de consumo en el mismo período.
	TopConsumed []TopConsumedDTO `json:"top_consumed"`

	// Productos bajo mínimos para el widget de acciones.
	LowStock []InventoryItemResponse `json:"low_stock"`
}

// DailyUsageDTO consumo agregado de un día.
type DailyUsageDTO struct {
	Date    string `json:"date"`    // YYYY-MM-DD
	Entries int    `json:"entries"` // registros de consumo del día
}

// TopConsumedDTO resumen de consumo de un producto.
type TopConsumedDTO struct {
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	TotalConsumed decimal.Decimal `json:"total_consumed"`
	Entries       int             `json:"entries"`
}
