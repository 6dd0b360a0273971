// Package metrics expone las métricas del almacén y del asistente en formato Prometheus.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/ports"
)

const namespace = "cocina"

var _ inventory.MetricsRecorder = (*Recorder)(nil)

// Recorder agrupa los colectores sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	usageRecorded      prometheus.Counter
	operationsRejected *prometheus.CounterVec
	notifications      *prometheus.GaugeVec
	lowStockItems      prometheus.Gauge
	inventoryItems     prometheus.Gauge

	llmCalls    *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
}

// NewRecorder crea y registra los colectores. withRuntime añade los de Go y proceso.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		usageRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_recorded_total",
			Help:      "Consumos registrados",
		}),
		operationsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_rejected_total",
			Help:      "Operaciones del almacén rechazadas sin modificar el estado",
		}, []string{"op", "reason"}),
		notifications: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications",
			Help:      "Notificaciones en la secuencia, por estado",
		}, []string{"state"}),
		lowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_items",
			Help:      "Productos en o por debajo del umbral mínimo",
		}),
		inventoryItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_items",
			Help:      "Productos en el inventario",
		}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "Llamadas al modelo generativo, por operación y resultado",
		}, []string{"op", "outcome"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "Duración de las llamadas al modelo generativo",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10), // hasta ~2 min
		}, []string{"op"}),
	}

	r.registry.MustRegister(
		r.usageRecorded,
		r.operationsRejected,
		r.notifications,
		r.lowStockItems,
		r.inventoryItems,
		r.llmCalls,
		r.llmDuration,
	)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// Registry registro subyacente (tests y exposición).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler handler HTTP de exposición.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ── inventory.MetricsRecorder ────────────────────────────────────────────────

// UsageRecorded sin etiquetas: la unidad es texto libre del usuario.
func (r *Recorder) UsageRecorded() {
	r.usageRecorded.Inc()
}

func (r *Recorder) OperationRejected(op, reason string) {
	r.operationsRejected.WithLabelValues(op, reason).Inc()
}

func (r *Recorder) AlertsDerived(total, unread, lowStock int) {
	r.notifications.WithLabelValues("unread").Set(float64(unread))
	r.notifications.WithLabelValues("read").Set(float64(total - unread))
	r.lowStockItems.Set(float64(lowStock))
}

func (r *Recorder) InventorySize(items int) {
	r.inventoryItems.Set(float64(items))
}

// ── Decorador del servicio LLM ───────────────────────────────────────────────

// InstrumentLLM envuelve el adaptador para contar llamadas y medir su duración.
func (r *Recorder) InstrumentLLM(next ports.LLMService) ports.LLMService {
	return &instrumentedLLM{next: next, r: r}
}

type instrumentedLLM struct {
	next ports.LLMService
	r    *Recorder
}

func (l *instrumentedLLM) Chat(ctx context.Context, req ports.ChatRequest) (string, error) {
	return l.track("chat", time.Now(), func() (string, error) { return l.next.Chat(ctx, req) })
}

func (l *instrumentedLLM) SuggestOrders(ctx context.Context, req ports.OrderSuggestionRequest) (string, error) {
	return l.track("order_suggestion", time.Now(), func() (string, error) { return l.next.SuggestOrders(ctx, req) })
}

func (l *instrumentedLLM) AnalyzeImage(ctx context.Context, req ports.ImageAnalysisRequest) (string, error) {
	return l.track("image_analysis", time.Now(), func() (string, error) { return l.next.AnalyzeImage(ctx, req) })
}

func (l *instrumentedLLM) track(op string, start time.Time, fn func() (string, error)) (string, error) {
	text, err := fn()
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case text == "":
		outcome = "empty"
	}
	l.r.llmCalls.WithLabelValues(op, outcome).Inc()
	l.r.llmDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return text, err
}
