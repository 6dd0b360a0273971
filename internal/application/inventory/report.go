package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/alert"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
	domaininv "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/inventory"
)

// StockReport datos de un informe de existencias, tomados de una única instantánea.
type StockReport struct {
	GeneratedAt time.Time
	Items       []entity.InventoryItem // ordenados por nombre
	Metrics     domaininv.Metrics
	Unread      int
}

// ReportGenerator puerto de salida que renderiza el informe (PDF).
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

// ReportService compone el informe a partir del Store y lo entrega al generador.
type ReportService struct {
	store        *Store
	gen          ReportGenerator
	expiryWindow time.Duration
}

// NewReportService construye el servicio de informes. expiryWindow <= 0 desactiva el
// indicador de caducidad próxima.
func NewReportService(store *Store, gen ReportGenerator, expiryWindow time.Duration) *ReportService {
	return &ReportService{store: store, gen: gen, expiryWindow: expiryWindow}
}

// Build arma el informe sin renderizarlo.
func (s *ReportService) Build() StockReport {
	snap := s.store.Snapshot()
	return StockReport{
		GeneratedAt: snap.TakenAt,
		Items:       domaininv.Apply(snap.Items, domaininv.Query{SortBy: domaininv.SortByName}),
		Metrics:     domaininv.ComputeMetrics(snap.Items, snap.TakenAt, s.expiryWindow),
		Unread:      alert.UnreadCount(snap.Notifications),
	}
}

// Generate devuelve el informe renderizado.
func (s *ReportService) Generate(ctx context.Context) ([]byte, error) {
	out, err := s.gen.GenerateStockReport(ctx, s.Build())
	if err != nil {
		return nil, fmt.Errorf("informe de stock: %w", err)
	}
	return out, nil
}
