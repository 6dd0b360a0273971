package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const (
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"
	geminiDefaultModel   = "gemini-3-pro-preview"
)

// ErrNoAPIKey el adaptador no tiene credenciales configuradas.
var ErrNoAPIKey = errors.New("AI: API key no configurada")

// GeminiService adaptador que implementa LLMService llamando a la API REST de Google Gemini.
// Usa únicamente net/http; el caso de uso impone además un context.WithTimeout por llamada.
type GeminiService struct {
	opts       Options
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. Con APIKey vacía las llamadas devuelven ErrNoAPIKey.
func NewGeminiService(opts Options) *GeminiService {
	opts = opts.withDefaults(geminiDefaultBaseURL, geminiDefaultModel)
	return &GeminiService{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.HTTPTimeout},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
	Thought    bool              `json:"thought,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ThinkingConfig *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Chat responde con el inventario en la instrucción de sistema y la conversación previa
// como turnos user/model.
func (s *GeminiService) Chat(ctx context.Context, req ports.ChatRequest) (string, error) {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, h := range req.History {
		role := "user"
		if h.Role == entity.ChatRoleModel {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: h.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: req.Message}}})

	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: chatSystem(req)}}},
		Contents:          contents,
	}
	if req.DeepReasoning {
		payload.GenerationConfig = &genConfig{
			ThinkingConfig: &thinkingConfig{ThinkingBudget: s.opts.ChatThinkingBudget},
		}
	}
	return s.generate(ctx, payload)
}

// SuggestOrders genera la orden de compra con el presupuesto de razonamiento ampliado.
func (s *GeminiService) SuggestOrders(ctx context.Context, req ports.OrderSuggestionRequest) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: ordersUserText(req)}},
		}},
		GenerationConfig: &genConfig{
			ThinkingConfig: &thinkingConfig{ThinkingBudget: s.opts.OrdersThinkingBudget},
		},
	}
	return s.generate(ctx, payload)
}

// AnalyzeImage envía la imagen en línea seguida de las instrucciones del escáner.
func (s *GeminiService) AnalyzeImage(ctx context.Context, req ports.ImageAnalysisRequest) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MIMEType: req.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(req.Data),
				}},
				{Text: imagePrompt},
			},
		}},
	}
	return s.generate(ctx, payload)
}

func (s *GeminiService) generate(ctx context.Context, payload geminiRequest) (string, error) {
	if s.opts.APIKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY", ErrNoAPIKey)
	}

	// La clave va en cabecera: los errores de transporte incluyen la URL completa.
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(s.opts.BaseURL, "/"), url.PathEscape(s.opts.Model))
	headers := map[string]string{"x-goog-api-key": s.opts.APIKey}

	raw, status, err := postJSON(ctx, s.httpClient, endpoint, headers, payload)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", status)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(raw, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	// Se concatenan las partes de texto; las partes de razonamiento se omiten.
	var sb strings.Builder
	for _, p := range gemResp.Candidates[0].Content.Parts {
		if p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return text, nil
}
