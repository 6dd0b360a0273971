package ai

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// Presupuestos de razonamiento por defecto (tokens).
const (
	DefaultChatThinkingBudget   = 16000
	DefaultOrdersThinkingBudget = 24000
)

// chatSystemPrompt rol del analista; %s recibe el inventario serializado.
const chatSystemPrompt = `### ROL
Actúa como un analista experto en gestión de inventarios de cocina profesional.

### CRITERIOS DE ANÁLISIS
Focalízate exclusivamente en productos que:
1. Estén próximos a caducar.
2. Presenten un exceso de stock o estén por debajo del mínimo.

### REGLAS DE COMUNICACIÓN (OBLIGATORIAS)
- Idioma: responde SIEMPRE en español de España (neutro, sin modismos latinos).
- Tono: sofisticado, profesional y analítico. Evita el lenguaje coloquial.
- Enfoque: prioriza la precisión y la propuesta de soluciones estratégicas.

Contexto del inventario: Inventario Actual: %s`

// ordersPrompt tarea de la orden de compra; recibe inventario e historial.
const ordersPrompt = `Analiza los siguientes datos operativos:
- Inventario: %s
- Historial de Gasto Reciente: %s

TAREA:
1. Detecta anomalías en el consumo (por ejemplo, gasto excesivo de aceite).
2. Cruza el stock actual con el mínimo y el gasto promedio.
3. Genera una orden de compra detallada para HOY.
4. Proporciona un consejo de ahorro de costes basado en los precios unitarios.

Responde en español con formato Markdown elegante.`

const imagePrompt = `Actúa como un escáner inteligente OCR para cocinas. Extrae:
- Nombre del producto.
- Cantidad o peso.
- Fecha de caducidad si es visible.
- Proveedor si es un albarán.

Devuelve los datos estructurados en español.`

// ── Vistas serializadas para el modelo ───────────────────────────────────────

type promptItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	MinThreshold decimal.Decimal  `json:"minThreshold"`
	ExpiryDate   string           `json:"expiryDate,omitempty"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit,omitempty"`
	LastUpdated  time.Time        `json:"lastUpdated"`
}

type promptUsage struct {
	ItemID           string          `json:"itemId"`
	ItemName         string          `json:"itemName"`
	Date             time.Time       `json:"date"`
	QuantityConsumed decimal.Decimal `json:"quantityConsumed"`
	Unit             string          `json:"unit"`
}

func inventoryJSON(items []entity.InventoryItem) string {
	out := make([]promptItem, 0, len(items))
	for _, it := range items {
		p := promptItem{
			ID:           it.ID,
			Name:         it.Name,
			Category:     it.Category,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			MinThreshold: it.MinThreshold,
			PricePerUnit: it.PricePerUnit,
			LastUpdated:  it.LastUpdated,
		}
		if it.ExpiryDate != nil {
			p.ExpiryDate = it.ExpiryDate.Format(time.DateOnly)
		}
		out = append(out, p)
	}
	return mustJSON(out)
}

func usageJSON(usage []entity.UsageHistory) string {
	out := make([]promptUsage, 0, len(usage))
	for _, u := range usage {
		out = append(out, promptUsage{
			ItemID:           u.ItemID,
			ItemName:         u.ItemName,
			Date:             u.Date,
			QuantityConsumed: u.QuantityConsumed,
			Unit:             u.Unit,
		})
	}
	return mustJSON(out)
}

// mustJSON las vistas sólo contienen tipos serializables.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func chatSystem(req ports.ChatRequest) string {
	return fmt.Sprintf(chatSystemPrompt, inventoryJSON(req.Inventory))
}

func ordersUserText(req ports.OrderSuggestionRequest) string {
	return fmt.Sprintf(ordersPrompt, inventoryJSON(req.Inventory), usageJSON(req.Usage))
}

// Options parámetros comunes a los adaptadores.
type Options struct {
	APIKey               string
	Model                string
	BaseURL              string // vacío usa el endpoint público
	ChatThinkingBudget   int    // razonamiento profundo del chat; <= 0 usa el valor por defecto
	OrdersThinkingBudget int    // <= 0 usa el valor por defecto
	HTTPTimeout          time.Duration
}

func (o Options) withDefaults(baseURL, model string) Options {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Model == "" {
		o.Model = model
	}
	if o.ChatThinkingBudget <= 0 {
		o.ChatThinkingBudget = DefaultChatThinkingBudget
	}
	if o.OrdersThinkingBudget <= 0 {
		o.OrdersThinkingBudget = DefaultOrdersThinkingBudget
	}
	if o.HTTPTimeout <= 0 {
		o.HTTPTimeout = 90 * time.Second
	}
	return o
}
