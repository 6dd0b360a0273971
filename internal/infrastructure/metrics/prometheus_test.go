package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/infrastructure/metrics"
)

type stubLLM struct {
	text string
	err  error
}

func (s stubLLM) Chat(context.Context, ports.ChatRequest) (string, error) { return s.text, s.err }
func (s stubLLM) SuggestOrders(context.Context, ports.OrderSuggestionRequest) (string, error) {
	return s.text, s.err
}
func (s stubLLM) AnalyzeImage(context.Context, ports.ImageAnalysisRequest) (string, error) {
	return s.text, s.err
}

func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorder_MetricasDelAlmacen(t *testing.T) {
	rec := metrics.NewRecorder(false)
	store := inventory.NewStore(inventory.WithMetrics(rec))
	store.Seed([]entity.InventoryItem{
		{ID: "4", Name: "Bacalao", Unit: "kg", Quantity: decimal.NewFromInt(18), MinThreshold: decimal.NewFromInt(10)},
		{ID: "5", Name: "Vino", Unit: "botellas", Quantity: decimal.NewFromInt(12), MinThreshold: decimal.NewFromInt(18)},
	}, nil)

	_, err := store.RecordUsage("4", decimal.NewFromInt(8))
	require.NoError(t, err)
	_, err = store.RecordUsage("no-existe", decimal.NewFromInt(1))
	require.Error(t, err)
	store.MarkAllAsRead()

	out := scrape(t, rec)
	assert.Contains(t, out, "cocina_inventory_items 2")
	assert.Contains(t, out, "cocina_low_stock_items 2")
	assert.Contains(t, out, `cocina_notifications{state="unread"} 0`)
	assert.Contains(t, out, `cocina_notifications{state="read"} 2`)
	assert.Contains(t, out, "cocina_usage_recorded_total 1")
	assert.NotContains(t, out, `unit="kg"`, "la unidad no es una etiqueta")
	assert.Contains(t, out, `cocina_operations_rejected_total{op="record_usage",reason="not_found"} 1`)
}

func TestInstrumentLLM(t *testing.T) {
	rec := metrics.NewRecorder(false)

	failing := rec.InstrumentLLM(stubLLM{err: errors.New("503")})
	_, err := failing.Chat(context.Background(), ports.ChatRequest{Message: "hola"})
	require.Error(t, err, "el decorador no oculta el error")

	ok := rec.InstrumentLLM(stubLLM{text: "pedido"})
	text, err := ok.SuggestOrders(context.Background(), ports.OrderSuggestionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "pedido", text)

	empty := rec.InstrumentLLM(stubLLM{})
	_, _ = empty.AnalyzeImage(context.Background(), ports.ImageAnalysisRequest{})

	count, err := testutil.GatherAndCount(rec.Registry(), "cocina_llm_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := scrape(t, rec)
	assert.Contains(t, out, `cocina_llm_calls_total{op="chat",outcome="error"} 1`)
	assert.Contains(t, out, `cocina_llm_calls_total{op="order_suggestion",outcome="ok"} 1`)
	assert.Contains(t, out, `cocina_llm_calls_total{op="image_analysis",outcome="empty"} 1`)
	assert.Contains(t, out, `cocina_llm_call_duration_seconds_count{op="chat"} 1`)
}

func TestNewRecorder_ConColectoresDeRuntime(t *testing.T) {
	rec := metrics.NewRecorder(true)
	assert.Contains(t, scrape(t, rec), "go_goroutines")
}
