package ports

import (
	"context"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// LLMService define el puerto de salida hacia el modelo generativo alojado.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// El modelo es una caja negra: las respuestas son texto libre y nunca se vuelcan
// automáticamente en el inventario.
type LLMService interface {
	// Chat responde a un mensaje del usuario con el inventario actual como contexto.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// SuggestOrders genera en Markdown la orden de compra recomendada para hoy.
	SuggestOrders(ctx context.Context, req OrderSuggestionRequest) (string, error)

	// AnalyzeImage extrae productos, cantidades y caducidades de una foto o albarán.
	AnalyzeImage(ctx context.Context, req ImageAnalysisRequest) (string, error)
}

// ChatTurn turno previo de la conversación.
type ChatTurn struct {
	Role string // entity.ChatRoleUser | entity.ChatRoleModel
	Text string
}

// ChatRequest parámetros explícitos de una consulta al asistente.
type ChatRequest struct {
	Message       string
	History       []ChatTurn
	Inventory     []entity.InventoryItem
	DeepReasoning bool // amplía el presupuesto de razonamiento del modelo
}

// OrderSuggestionRequest datos para la recomendación de compra.
type OrderSuggestionRequest struct {
	Inventory []entity.InventoryItem
	Usage     []entity.UsageHistory // opcional
}

// ImageAnalysisRequest imagen a analizar.
type ImageAnalysisRequest struct {
	Data     []byte
	MIMEType string
}
