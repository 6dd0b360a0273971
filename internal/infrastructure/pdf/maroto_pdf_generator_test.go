package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

func TestGenerateStockReport(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(145)
	store := inventory.NewStore(inventory.WithClock(func() time.Time { return now }))
	store.Seed([]entity.InventoryItem{
		{ID: "5", Name: "Vino Rioja Alta 890", Category: "Bodega", Unit: "botellas",
			Quantity: decimal.NewFromInt(12), MinThreshold: decimal.NewFromInt(18), PricePerUnit: &price},
		{ID: "4", Name: "Bacalao Giraldo", Category: "Pescados", Unit: "kg",
			Quantity: decimal.NewFromInt(18), MinThreshold: decimal.NewFromInt(10)},
	}, nil)

	svc := inventory.NewReportService(store, NewMarotoPDFGenerator("Cocina Central"), 0)

	report := svc.Build()
	assert.Equal(t, "4", report.Items[0].ID, "ordenado por nombre")
	assert.Equal(t, 1, report.Unread)
	assert.True(t, decimal.NewFromInt(1740).Equal(report.Metrics.TotalValue))

	out, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateStockReport_InventarioVacio(t *testing.T) {
	out, err := NewMarotoPDFGenerator("").GenerateStockReport(context.Background(), inventory.StockReport{
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFormatEuros(t *testing.T) {
	assert.Equal(t, "4.425,00 €", formatEuros(decimal.NewFromInt(4425)))
	assert.Equal(t, "12,50 €", formatEuros(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "1.000.000,00 €", formatEuros(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-3,10 €", formatEuros(decimal.NewFromFloat(-3.1)))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "4,2", formatQuantity(decimal.RequireFromString("4.20")))
	assert.Equal(t, "18", formatQuantity(decimal.NewFromInt(18)))
}
