package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicDefaultModel   = "claude-sonnet-4-5"
	anthropicVersion        = "2023-06-01"

	// anthropicMaxTokens debe superar el presupuesto de razonamiento.
	anthropicMaxTokens = 4096
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic.
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	opts       Options
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// Con APIKey vacía las llamadas devuelven un error descriptivo en lugar de panic.
func NewAnthropicService(opts Options) *AnthropicService {
	opts = opts.withDefaults(anthropicDefaultBaseURL, anthropicDefaultModel)
	return &AnthropicService{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.HTTPTimeout},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	Thinking  *anthropicThinking `json:"thinking,omitempty"`
}

type anthropicThinking struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"` // base64
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Chat envía la conversación previa y el mensaje nuevo con el inventario en el prompt de sistema.
func (s *AnthropicService) Chat(ctx context.Context, req ports.ChatRequest) (string, error) {
	msgs := make([]anthropicMessage, 0, len(req.History)+1)
	for _, h := range req.History {
		role := "user"
		if h.Role == entity.ChatRoleModel {
			role = "assistant"
		}
		msgs = append(msgs, textMessage(role, h.Text))
	}
	msgs = append(msgs, textMessage("user", req.Message))

	payload := anthropicRequest{
		Model:     s.opts.Model,
		MaxTokens: anthropicMaxTokens,
		System:    chatSystem(req),
		Messages:  msgs,
	}
	if req.DeepReasoning {
		s.withThinking(&payload, s.opts.ChatThinkingBudget)
	}
	return s.send(ctx, payload)
}

// SuggestOrders genera la orden de compra con razonamiento extendido.
func (s *AnthropicService) SuggestOrders(ctx context.Context, req ports.OrderSuggestionRequest) (string, error) {
	payload := anthropicRequest{
		Model:     s.opts.Model,
		MaxTokens: anthropicMaxTokens,
		Messages:  []anthropicMessage{textMessage("user", ordersUserText(req))},
	}
	s.withThinking(&payload, s.opts.OrdersThinkingBudget)
	return s.send(ctx, payload)
}

// AnalyzeImage envía la imagen como bloque base64 seguida de las instrucciones del escáner.
func (s *AnthropicService) AnalyzeImage(ctx context.Context, req ports.ImageAnalysisRequest) (string, error) {
	payload := anthropicRequest{
		Model:     s.opts.Model,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicBlock{
				{Type: "image", Source: &anthropicImageSource{
					Type:      "base64",
					MediaType: req.MIMEType,
					Data:      base64.StdEncoding.EncodeToString(req.Data),
				}},
				{Type: "text", Text: imagePrompt},
			},
		}},
	}
	return s.send(ctx, payload)
}

func textMessage(role, text string) anthropicMessage {
	return anthropicMessage{Role: role, Content: []anthropicBlock{{Type: "text", Text: text}}}
}

// withThinking activa el razonamiento extendido; max_tokens debe quedar por encima del presupuesto.
func (s *AnthropicService) withThinking(p *anthropicRequest, budget int) {
	p.Thinking = &anthropicThinking{Type: "enabled", BudgetTokens: budget}
	if p.MaxTokens <= budget {
		p.MaxTokens = budget + anthropicMaxTokens
	}
}

func (s *AnthropicService) send(ctx context.Context, payload anthropicRequest) (string, error) {
	if s.opts.APIKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY", ErrNoAPIKey)
	}

	endpoint := strings.TrimRight(s.opts.BaseURL, "/") + "/v1/messages"
	raw, status, err := postJSON(ctx, s.httpClient, endpoint, map[string]string{
		"x-api-key":         s.opts.APIKey,
		"anthropic-version": anthropicVersion,
	}, payload)
	if err != nil {
		return "", err
	}

	// Manejar errores HTTP de la API de Anthropic
	if status != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", status)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(raw, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	// Sólo cuentan los bloques de texto; los de razonamiento se omiten.
	parts := make([]string, 0, len(anthResp.Content))
	for _, b := range anthResp.Content {
		if b.Type == "text" && strings.TrimSpace(b.Text) != "" {
			parts = append(parts, b.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return text, nil
}
