package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// DateLayout formato de las fechas de caducidad en la API.
const DateLayout = "2006-01-02"

// InventoryQuery parámetros de GET /api/inventory.
type InventoryQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"` // "All" o vacío = todas
	Sort     string `query:"sort"`     // name | quantity | expiry
}

// UpsertItemRequest body para POST /api/inventory.
type UpsertItemRequest struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	MinThreshold decimal.Decimal  `json:"min_threshold"`
	ExpiryDate   string           `json:"expiry_date,omitempty"` // YYYY-MM-DD
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
}

// RecordUsageRequest body para POST /api/inventory/:id/usage.
type RecordUsageRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// InventoryItemResponse salida de un producto.
type InventoryItemResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	MinThreshold decimal.Decimal  `json:"min_threshold"`
	ExpiryDate   string           `json:"expiry_date,omitempty"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	StockValue   decimal.Decimal  `json:"stock_value"`
	LowStock     bool             `json:"low_stock"`
	LastUpdated  time.Time        `json:"last_updated"`
}

// InventoryListResponse salida de GET /api/inventory.
type InventoryListResponse struct {
	Total int                     `json:"total"`
	Items []InventoryItemResponse `json:"items"`
}

// UsageHistoryResponse registro de consumo.
type UsageHistoryResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	ItemName         string          `json:"item_name"`
	Date             time.Time       `json:"date"`
	QuantityConsumed decimal.Decimal `json:"quantity_consumed"`
	Unit             string          `json:"unit"`
}

// NewInventoryItemResponse mapea la entidad a la salida HTTP.
func NewInventoryItemResponse(it entity.InventoryItem) InventoryItemResponse {
	out := InventoryItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Category:     it.Category,
		Quantity:     it.Quantity,
		Unit:         it.Unit,
		MinThreshold: it.MinThreshold,
		PricePerUnit: it.PricePerUnit,
		StockValue:   it.StockValue(),
		LowStock:     it.IsLowStock(),
		LastUpdated:  it.LastUpdated,
	}
	if it.ExpiryDate != nil {
		out.ExpiryDate = it.ExpiryDate.Format(DateLayout)
	}
	return out
}

// NewInventoryListResponse mapea una lista de productos.
func NewInventoryListResponse(items []entity.InventoryItem) InventoryListResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInventoryItemResponse(it))
	}
	return InventoryListResponse{Total: len(out), Items: out}
}

// NewUsageHistoryResponse mapea un registro de consumo.
func NewUsageHistoryResponse(h entity.UsageHistory) UsageHistoryResponse {
	return UsageHistoryResponse{
		ID:               h.ID,
		ItemID:           h.ItemID,
		ItemName:         h.ItemName,
		Date:             h.Date,
		QuantityConsumed: h.QuantityConsumed,
		Unit:             h.Unit,
	}
}

// NewUsageHistoryList mapea el historial completo.
func NewUsageHistoryList(history []entity.UsageHistory) []UsageHistoryResponse {
	out := make([]UsageHistoryResponse, 0, len(history))
	for _, h := range history {
		out = append(out, NewUsageHistoryResponse(h))
	}
	return out
}

// ParseDate interpreta una fecha YYYY-MM-DD como medianoche UTC. "" devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UsageListResponse salida paginada de GET /api/usage.
type UsageListResponse struct {
	Page  PageResponse           `json:"page"`
	Items []UsageHistoryResponse `json:"items"`
}

// NewUsageListResponse pagina el historial (más reciente primero).
func NewUsageListResponse(history []entity.UsageHistory, page PageRequest) UsageListResponse {
	total := len(history)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	return UsageListResponse{
		Page:  PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		Items: NewUsageHistoryList(history[start:end]),
	}
}
