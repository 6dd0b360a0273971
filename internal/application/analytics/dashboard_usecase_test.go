package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/alert"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

func TestGetSummary(t *testing.T) {
	now := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)
	price := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }
	expiry := time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC)

	store := inventory.NewStore(
		inventory.WithClock(func() time.Time { return now }),
		inventory.WithAlertOptions(alert.Options{ExpiryAlerts: true, ExpiryWindow: alert.DefaultExpiryWindow}),
	)
	store.Seed([]entity.InventoryItem{
		{ID: "1", Name: "Jamón", Unit: "piezas", Quantity: decimal.NewFromInt(4), MinThreshold: decimal.NewFromInt(2), PricePerUnit: price(450)},
		{ID: "5", Name: "Vino", Unit: "botellas", Quantity: decimal.NewFromInt(12), MinThreshold: decimal.NewFromInt(18), PricePerUnit: price(145), ExpiryDate: &expiry},
	}, []entity.UsageHistory{
		{ID: "h3", ItemID: "5", ItemName: "Vino", Date: now.Add(-2 * time.Hour), QuantityConsumed: decimal.NewFromInt(2), Unit: "botellas"},
		{ID: "h2", ItemID: "1", ItemName: "Jamón", Date: now.AddDate(0, 0, -1), QuantityConsumed: decimal.NewFromFloat(0.4), Unit: "piezas"},
		{ID: "h1", ItemID: "1", ItemName: "Jamón", Date: now.AddDate(0, 0, -2), QuantityConsumed: decimal.NewFromFloat(0.2), Unit: "piezas"},
		{ID: "h0", ItemID: "1", ItemName: "Jamón", Date: now.AddDate(0, 0, -30), QuantityConsumed: decimal.NewFromInt(1), Unit: "piezas"},
	})

	uc := NewDashboardUseCase(store, alert.DefaultExpiryWindow)
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(4*450+12*145).Equal(got.TotalValue))
	assert.Equal(t, 1, got.CriticalItems)
	assert.Equal(t, 2, got.UnreadNotifications, "stock crítico + caducidad del vino")
	assert.Equal(t, 1, got.ExpiringSoon)
	assert.Equal(t, 2, got.ItemCount)

	require.Len(t, got.DailyUsage, dashboardDays)
	assert.Equal(t, "2024-05-14", got.DailyUsage[0].Date)
	assert.Equal(t, "2024-05-20", got.DailyUsage[6].Date)
	assert.Equal(t, 1, got.DailyUsage[6].Entries)
	assert.Equal(t, 1, got.DailyUsage[5].Entries)
	assert.Equal(t, 1, got.DailyUsage[4].Entries)

	require.Len(t, got.TopConsumed, 2)
	assert.Equal(t, "1", got.TopConsumed[0].ItemID, "el registro de hace 30 días queda fuera del período")
	assert.Equal(t, 2, got.TopConsumed[0].Entries)
	assert.True(t, decimal.NewFromFloat(0.6).Equal(got.TopConsumed[0].TotalConsumed))

	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "5", got.LowStock[0].ID)
}

func TestGetSummary_VentanaCeroDesactivaCaducidad(t *testing.T) {
	now := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)

	store := inventory.NewStore(
		inventory.WithClock(func() time.Time { return now }),
		inventory.WithAlertOptions(alert.Options{ExpiryAlerts: true}),
	)
	store.Seed([]entity.InventoryItem{
		{ID: "3", Name: "Queso", Unit: "ruedas", Quantity: decimal.NewFromInt(3), MinThreshold: decimal.NewFromInt(2), ExpiryDate: &expiry},
	}, nil)

	uc := NewDashboardUseCase(store, 0)
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.ExpiringSoon, "sin ventana no hay indicador de caducidad")
	assert.Zero(t, got.UnreadNotifications)
}
