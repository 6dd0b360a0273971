package ai_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/infrastructure/ai"
)

const anthropicOK = `{"content":[
	{"type":"thinking","thinking":"..."},
	{"type":"text","text":"Pedir 10 kg de bacalao."}]}`

func TestAnthropic_ChatCabecerasYRoles(t *testing.T) {
	var got captured
	srv := fakeServer(t, http.StatusOK, anthropicOK, &got)
	svc := ai.NewAnthropicService(ai.Options{APIKey: "sk-test", Model: "claude-test", BaseURL: srv.URL})

	text, err := svc.Chat(context.Background(), ports.ChatRequest{
		Message:   "¿Qué pido?",
		History:   []ports.ChatTurn{{Role: entity.ChatRoleModel, Text: "Hola"}},
		Inventory: sampleInventory(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pedir 10 kg de bacalao.", text)

	assert.Equal(t, "/v1/messages", got.Path)
	assert.Equal(t, "sk-test", got.Header.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", got.Header.Get("anthropic-version"))
	assert.Equal(t, "claude-test", got.Body["model"])
	assert.Contains(t, got.Body["system"], "Bacalao Giraldo")
	assert.NotContains(t, got.Body, "thinking")

	msgs := got.Body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "assistant", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestAnthropic_SuggestOrdersActivaRazonamiento(t *testing.T) {
	var got captured
	srv := fakeServer(t, http.StatusOK, anthropicOK, &got)
	svc := ai.NewAnthropicService(ai.Options{APIKey: "k", BaseURL: srv.URL})

	_, err := svc.SuggestOrders(context.Background(), ports.OrderSuggestionRequest{Inventory: sampleInventory()})
	require.NoError(t, err)

	thinking := got.Body["thinking"].(map[string]any)
	assert.Equal(t, "enabled", thinking["type"])
	assert.EqualValues(t, ai.DefaultOrdersThinkingBudget, thinking["budget_tokens"])
	assert.Greater(t, got.Body["max_tokens"].(float64), thinking["budget_tokens"].(float64))
}

func TestAnthropic_AnalyzeImageBloqueBase64(t *testing.T) {
	var got captured
	srv := fakeServer(t, http.StatusOK, anthropicOK, &got)
	svc := ai.NewAnthropicService(ai.Options{APIKey: "k", BaseURL: srv.URL})

	_, err := svc.AnalyzeImage(context.Background(), ports.ImageAnalysisRequest{Data: []byte("img"), MIMEType: "image/png"})
	require.NoError(t, err)

	content := got.Body["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	src := content[0].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "base64", src["type"])
	assert.Equal(t, "image/png", src["media_type"])
	assert.Equal(t, "aW1n", src["data"])
}

func TestAnthropic_ErrorDeLaAPI(t *testing.T) {
	var got captured
	srv := fakeServer(t, http.StatusBadRequest, `{"type":"error","error":{"type":"invalid_request_error","message":"bad image"}}`, &got)
	svc := ai.NewAnthropicService(ai.Options{APIKey: "k", BaseURL: srv.URL})

	_, err := svc.AnalyzeImage(context.Background(), ports.ImageAnalysisRequest{Data: []byte("x"), MIMEType: "image/png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad image")
}

func TestAnthropic_SinBloquesDeTexto(t *testing.T) {
	var got captured
	srv := fakeServer(t, http.StatusOK, `{"content":[{"type":"thinking","thinking":"..."}]}`, &got)
	svc := ai.NewAnthropicService(ai.Options{APIKey: "k", BaseURL: srv.URL})

	_, err := svc.Chat(context.Background(), ports.ChatRequest{Message: "hola"})
	assert.Error(t, err)
}

func TestAnthropic_SinAPIKey(t *testing.T) {
	svc := ai.NewAnthropicService(ai.Options{})

	_, err := svc.SuggestOrders(context.Background(), ports.OrderSuggestionRequest{})
	assert.True(t, errors.Is(err, ai.ErrNoAPIKey))
}
