package dto

import (
	"time"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// ChatRequest body para POST /api/assistant/chat.
type ChatRequest struct {
	Message       string `json:"message"`
	DeepReasoning bool   `json:"deep_reasoning"`
}

// ChatMessageResponse mensaje de la conversación.
type ChatMessageResponse struct {
	Role      string    `json:"role"` // user | model
	Text      string    `json:"text"`
	Thinking  bool      `json:"thinking,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatReplyResponse salida de POST /api/assistant/chat.
type ChatReplyResponse struct {
	Reply    ChatMessageResponse   `json:"reply"`
	Fallback bool                  `json:"fallback"` // el modelo falló y se usó el texto de reserva
	Messages []ChatMessageResponse `json:"messages"`
}

// SuggestionResponse recomendación de compra (Markdown).
type SuggestionResponse struct {
	Suggestion  string     `json:"suggestion"`
	Fallback    bool       `json:"fallback"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// ImageAnalysisResponse resultado del escáner visual.
type ImageAnalysisResponse struct {
	Analysis string `json:"analysis"`
	Fallback bool   `json:"fallback"`
}

// AssistantStatusResponse indicadores de carga por interacción.
type AssistantStatusResponse struct {
	ChatLoading       bool `json:"chat_loading"`
	SuggestionLoading bool `json:"suggestion_loading"`
	ScanLoading       bool `json:"scan_loading"`
	Messages          int  `json:"messages"`
}

// NewChatMessageResponse mapea un mensaje.
func NewChatMessageResponse(m entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{Role: m.Role, Text: m.Text, Thinking: m.Thinking, CreatedAt: m.CreatedAt}
}

// NewChatMessageList mapea la conversación.
func NewChatMessageList(ms []entity.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewChatMessageResponse(m))
	}
	return out
}
