package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// Textos de reserva cuando el modelo falla o responde vacío.
const (
	FallbackChat       = "Lo siento, no he podido procesar tu consulta en este momento."
	FallbackSuggestion = "Sugerencia no disponible."
	FallbackImage      = "Análisis visual fallido."

	// ImageMessageText mensaje de usuario que se añade al chat tras un escaneo.
	ImageMessageText = "[Imagen analizada]"

	// MaxImageBytes tamaño máximo de imagen aceptado por el escáner.
	MaxImageBytes = 10 << 20

	defaultAITimeout = 60 * time.Second
)

// ErrStaleReply la respuesta llegó después de reiniciar la conversación y se descartó.
var ErrStaleReply = errors.New("respuesta descartada: la conversación se reinició")

// AssistantUseCase orquesta las llamadas al modelo generativo: chat con el inventario,
// recomendación de compra y escáner visual.
//
// Cada interacción tiene su propio indicador de carga; mientras una está en curso se
// rechazan nuevas peticiones de esa misma interacción (domain.ErrBusy), pero las demás
// operaciones del almacén siguen disponibles. Un fallo del modelo nunca corrompe el
// estado: se sustituye por un texto de reserva fijo.
type AssistantUseCase struct {
	llm     ports.LLMService
	store   *inventory.Store
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu         sync.Mutex
	messages   []entity.ChatMessage
	epoch      uint64 // se incrementa en cada ResetChat
	suggestion *Suggestion

	chatBusy       atomic.Bool
	suggestionBusy atomic.Bool
	scanBusy       atomic.Bool
}

// Suggestion última recomendación de compra generada.
type Suggestion struct {
	Text        string
	Fallback    bool
	GeneratedAt time.Time
}

// ChatInput mensaje del usuario.
type ChatInput struct {
	Message       string
	DeepReasoning bool
}

// ChatResult respuesta del asistente y conversación resultante.
type ChatResult struct {
	Reply    entity.ChatMessage
	Fallback bool
	Messages []entity.ChatMessage
}

// ImageResult resultado del escáner visual.
type ImageResult struct {
	Analysis string
	Fallback bool
}

// AssistantStatus indicadores de carga por interacción.
type AssistantStatus struct {
	ChatLoading       bool
	SuggestionLoading bool
	ScanLoading       bool
	Messages          int
}

// NewAssistantUseCase construye el caso de uso. timeout <= 0 usa 60 s por llamada.
func NewAssistantUseCase(llm ports.LLMService, store *inventory.Store, timeout time.Duration, log zerolog.Logger) *AssistantUseCase {
	if timeout <= 0 {
		timeout = defaultAITimeout
	}
	return &AssistantUseCase{
		llm:     llm,
		store:   store,
		timeout: timeout,
		log:     log,
		now:     time.Now,
	}
}

// Chat envía el mensaje al modelo con la conversación previa y el inventario actual.
//
// Retorna:
//   - domain.ErrInvalidInput si el mensaje está vacío.
//   - domain.ErrBusy         si ya hay una consulta de chat en curso.
//   - ErrStaleReply          si la conversación se reinició durante la llamada.
//   - ctx.Err()              si el llamante abandonó la petición (la respuesta se descarta).
func (uc *AssistantUseCase) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.chatBusy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer uc.chatBusy.Store(false)

	question := entity.ChatMessage{Role: entity.ChatRoleUser, Text: msg, CreatedAt: uc.now()}

	uc.mu.Lock()
	history := toTurns(uc.messages)
	epoch := uc.epoch
	uc.mu.Unlock()

	req := ports.ChatRequest{
		Message:       msg,
		History:       history,
		Inventory:     uc.store.Items(),
		DeepReasoning: in.DeepReasoning,
	}
	text, fallback := uc.call(ctx, "chat", FallbackChat, func(callCtx context.Context) (string, error) {
		return uc.llm.Chat(callCtx, req)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply := entity.ChatMessage{
		Role: entity.ChatRoleModel, Text: text, Thinking: in.DeepReasoning, CreatedAt: uc.now(),
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.epoch != epoch {
		return nil, ErrStaleReply
	}
	// Pregunta y respuesta se añaden juntas: una petición abandonada no deja turnos sueltos.
	uc.messages = append(uc.messages, question, reply)
	return &ChatResult{
		Reply:    reply,
		Fallback: fallback,
		Messages: append([]entity.ChatMessage(nil), uc.messages...),
	}, nil
}

// Messages copia de la conversación.
func (uc *AssistantUseCase) Messages() []entity.ChatMessage {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]entity.ChatMessage(nil), uc.messages...)
}

// ResetChat vacía la conversación. Las respuestas en vuelo se descartarán al llegar.
func (uc *AssistantUseCase) ResetChat() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.messages = nil
	uc.epoch++
}

// SuggestOrders pide al modelo la orden de compra del día a partir del inventario y
// del historial de consumo. La última sugerencia queda disponible en LastSuggestion.
func (uc *AssistantUseCase) SuggestOrders(ctx context.Context) (*Suggestion, error) {
	if !uc.suggestionBusy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer uc.suggestionBusy.Store(false)

	snap := uc.store.Snapshot()
	req := ports.OrderSuggestionRequest{Inventory: snap.Items, Usage: snap.History}
	text, fallback := uc.call(ctx, "order_suggestion", FallbackSuggestion, func(callCtx context.Context) (string, error) {
		return uc.llm.SuggestOrders(callCtx, req)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Suggestion{Text: text, Fallback: fallback, GeneratedAt: uc.now()}
	uc.mu.Lock()
	uc.suggestion = s
	uc.mu.Unlock()

	out := *s
	return &out, nil
}

// LastSuggestion devuelve la última sugerencia o nil.
func (uc *AssistantUseCase) LastSuggestion() *Suggestion {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.suggestion == nil {
		return nil
	}
	out := *uc.suggestion
	return &out
}

// ClearSuggestion descarta la sugerencia guardada.
func (uc *AssistantUseCase) ClearSuggestion() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.suggestion = nil
}

// AnalyzeImage envía una foto de despensa o un albarán al modelo. El resultado es
// informativo: se muestra y se añade al chat, pero no modifica el inventario.
// Si mimeType está vacío se detecta a partir del contenido.
func (uc *AssistantUseCase) AnalyzeImage(ctx context.Context, data []byte, mimeType string) (*ImageResult, error) {
	if len(data) == 0 || len(data) > MaxImageBytes {
		return nil, domain.ErrInvalidInput
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i != -1 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, domain.ErrInvalidInput
	}
	if !uc.scanBusy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer uc.scanBusy.Store(false)

	uc.mu.Lock()
	epoch := uc.epoch
	uc.mu.Unlock()

	req := ports.ImageAnalysisRequest{Data: data, MIMEType: mimeType}
	text, fallback := uc.call(ctx, "image_analysis", FallbackImage, func(callCtx context.Context) (string, error) {
		return uc.llm.AnalyzeImage(callCtx, req)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	if uc.epoch == epoch {
		now := uc.now()
		uc.messages = append(uc.messages,
			entity.ChatMessage{Role: entity.ChatRoleUser, Text: ImageMessageText, CreatedAt: now},
			entity.ChatMessage{Role: entity.ChatRoleModel, Text: text, CreatedAt: now},
		)
	}
	uc.mu.Unlock()

	return &ImageResult{Analysis: text, Fallback: fallback}, nil
}

// Status indicadores de carga actuales.
func (uc *AssistantUseCase) Status() AssistantStatus {
	uc.mu.Lock()
	n := len(uc.messages)
	uc.mu.Unlock()
	return AssistantStatus{
		ChatLoading:       uc.chatBusy.Load(),
		SuggestionLoading: uc.suggestionBusy.Load(),
		ScanLoading:       uc.scanBusy.Load(),
		Messages:          n,
	}
}

// call ejecuta fn con timeout. Un error o un texto vacío se sustituyen por fallback.
func (uc *AssistantUseCase) call(
	ctx context.Context,
	op, fallback string,
	fn func(context.Context) (string, error),
) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := fn(callCtx)
	if err != nil {
		uc.log.Warn().Err(err).Str("op", op).Msg("llamada al modelo fallida, se usa texto de reserva")
		return fallback, true
	}
	if strings.TrimSpace(text) == "" {
		uc.log.Warn().Str("op", op).Msg("el modelo devolvió una respuesta vacía, se usa texto de reserva")
		return fallback, true
	}
	return text, false
}

func toTurns(ms []entity.ChatMessage) []ports.ChatTurn {
	out := make([]ports.ChatTurn, 0, len(ms))
	for _, m := range ms {
		out = append(out, ports.ChatTurn{Role: m.Role, Text: m.Text})
	}
	return out
}
