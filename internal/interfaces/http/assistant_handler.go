package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/dto"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/usecase"
)

// AssistantHandler maneja el chat con el inventario, la orden de compra sugerida y el
// escáner visual. Los fallos del modelo no son errores HTTP: la respuesta lleva
// fallback=true y el texto de reserva.
type AssistantHandler struct {
	uc *usecase.AssistantUseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Chat godoc
// @Summary      Consultar al asistente
// @Description  Envía el mensaje con la conversación previa y el inventario actual.
//               deep_reasoning amplía el presupuesto de razonamiento del modelo.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message (obligatorio), deep_reasoning"
// @Success      200   {object}  dto.ChatReplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assistant/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.Chat(c.Context(), usecase.ChatInput{
		Message:       req.Message,
		DeepReasoning: req.DeepReasoning,
	})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.ChatReplyResponse{
		Reply:    dto.NewChatMessageResponse(res.Reply),
		Fallback: res.Fallback,
		Messages: dto.NewChatMessageList(res.Messages),
	})
}

// Messages godoc
// @Summary      Conversación actual
// @Tags         assistant
// @Produce      json
// @Success      200  {array}  dto.ChatMessageResponse
// @Router       /api/assistant/chat [get]
func (h *AssistantHandler) Messages(c *fiber.Ctx) error {
	return c.JSON(dto.NewChatMessageList(h.uc.Messages()))
}

// ResetChat godoc
// @Summary      Reiniciar conversación
// @Description  Las respuestas todavía en vuelo se descartan al llegar.
// @Tags         assistant
// @Success      204
// @Router       /api/assistant/chat [delete]
func (h *AssistantHandler) ResetChat(c *fiber.Ctx) error {
	h.uc.ResetChat()
	return c.SendStatus(fiber.StatusNoContent)
}

// SuggestOrders godoc
// @Summary      Generar orden de compra sugerida
// @Description  Analiza inventario e historial de consumo. Markdown.
// @Tags         assistant
// @Produce      json
// @Success      200  {object}  dto.SuggestionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assistant/order-suggestion [post]
func (h *AssistantHandler) SuggestOrders(c *fiber.Ctx) error {
	s, err := h.uc.SuggestOrders(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(suggestionResponse(s))
}

// LastSuggestion godoc
// @Summary      Última orden de compra sugerida
// @Tags         assistant
// @Produce      json
// @Success      200  {object}  dto.SuggestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assistant/order-suggestion [get]
func (h *AssistantHandler) LastSuggestion(c *fiber.Ctx) error {
	s := h.uc.LastSuggestion()
	if s == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "todavía no se ha generado ninguna sugerencia",
		})
	}
	return c.JSON(suggestionResponse(s))
}

// ClearSuggestion godoc
// @Summary      Descartar la sugerencia guardada
// @Tags         assistant
// @Success      204
// @Router       /api/assistant/order-suggestion [delete]
func (h *AssistantHandler) ClearSuggestion(c *fiber.Ctx) error {
	h.uc.ClearSuggestion()
	return c.SendStatus(fiber.StatusNoContent)
}

func suggestionResponse(s *usecase.Suggestion) dto.SuggestionResponse {
	at := s.GeneratedAt
	return dto.SuggestionResponse{Suggestion: s.Text, Fallback: s.Fallback, GeneratedAt: &at}
}

// Scan godoc
// @Summary      Escáner visual
// @Description  Foto de despensa o albarán (campo multipart "image"). El resultado es
//               informativo y se añade al chat; no modifica el inventario.
// @Tags         assistant
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Imagen (image/*)"
// @Success      200    {object}  dto.ImageAnalysisResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/assistant/scan [post]
func (h *AssistantHandler) Scan(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "se esperaba un fichero en el campo image",
		})
	}
	if fh.Size > usecase.MaxImageBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "la imagen supera el tamaño máximo",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err, "")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageBytes+1))
	if err != nil {
		return respondError(c, err, "")
	}

	res, err := h.uc.AnalyzeImage(c.Context(), data, fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.ImageAnalysisResponse{Analysis: res.Analysis, Fallback: res.Fallback})
}

// Status godoc
// @Summary      Indicadores de carga del asistente
// @Tags         assistant
// @Produce      json
// @Success      200  {object}  dto.AssistantStatusResponse
// @Router       /api/assistant/status [get]
func (h *AssistantHandler) Status(c *fiber.Ctx) error {
	st := h.uc.Status()
	return c.JSON(dto.AssistantStatusResponse{
		ChatLoading:       st.ChatLoading,
		SuggestionLoading: st.SuggestionLoading,
		ScanLoading:       st.ScanLoading,
		Messages:          st.Messages,
	})
}
