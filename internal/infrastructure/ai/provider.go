package ai

import (
	"fmt"
	"strings"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
)

// Proveedores soportados.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// NewLLMService elige el adaptador según AI_PROVIDER. Vacío equivale a gemini.
func NewLLMService(provider string, gemini, anthropic Options) (ports.LLMService, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderGemini:
		return NewGeminiService(gemini), nil
	case ProviderAnthropic:
		return NewAnthropicService(anthropic), nil
	default:
		return nil, fmt.Errorf("AI: proveedor desconocido %q", provider)
	}
}
