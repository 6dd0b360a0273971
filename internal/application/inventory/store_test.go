package inventory_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/alert"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedItems() []entity.InventoryItem {
	mk := func(id, name, unit string, qty, min float64) entity.InventoryItem {
		return entity.InventoryItem{
			ID: id, Name: name, Category: "Test", Unit: unit,
			Quantity:     decimal.NewFromFloat(qty),
			MinThreshold: decimal.NewFromFloat(min),
			LastUpdated:  fixedNow.Add(-24 * time.Hour),
		}
	}
	return []entity.InventoryItem{
		mk("1", "Jamón Ibérico 5J", "piezas", 4.2, 2),
		mk("2", "AOVE Picual Premium", "L", 45, 20),
		mk("3", "Queso Manchego DOP", "ruedas", 3, 2),
		mk("4", "Bacalao Giraldo", "kg", 18, 10),
	}
}

func newStore(t *testing.T, opts ...inventory.StoreOption) *inventory.Store {
	t.Helper()
	seq := 0
	base := []inventory.StoreOption{
		inventory.WithClock(func() time.Time { return fixedNow }),
		inventory.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	s := inventory.NewStore(append(base, opts...)...)
	s.Seed(seedItems(), []entity.UsageHistory{
		{ID: "h1", ItemID: "1", ItemName: "Jamón Ibérico 5J", Date: fixedNow.Add(-48 * time.Hour), QuantityConsumed: decimal.NewFromFloat(0.2), Unit: "piezas"},
	})
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordUsage
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordUsage_RestaYAntepone(t *testing.T) {
	s := newStore(t)

	entry, err := s.RecordUsage("4", decimal.NewFromFloat(5.5))
	require.NoError(t, err)

	it, err := s.Item("4")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(it.Quantity), "18 - 5.5 = 12.5, obtenido %s", it.Quantity)
	assert.Equal(t, fixedNow, it.LastUpdated)

	history := s.History(0)
	require.Len(t, history, 2)
	head := history[0]
	assert.Equal(t, *entry, head)
	assert.True(t, decimal.NewFromFloat(5.5).Equal(head.QuantityConsumed))
	assert.Equal(t, "kg", head.Unit)
	assert.Equal(t, "Bacalao Giraldo", head.ItemName)
	assert.Equal(t, "4", head.ItemID)
	assert.Equal(t, "h1", history[1].ID)
}

func TestRecordUsage_CantidadRecortadaACero(t *testing.T) {
	s := newStore(t)

	_, err := s.RecordUsage("3", decimal.NewFromInt(10))
	require.NoError(t, err)

	it, _ := s.Item("3")
	assert.True(t, it.Quantity.IsZero(), "la cantidad nunca baja de cero")
	assert.True(t, decimal.NewFromInt(10).Equal(s.History(1)[0].QuantityConsumed),
		"el historial guarda la cantidad solicitada")
}

func TestRecordUsage_CantidadNoPositivaNoModificaNada(t *testing.T) {
	for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-1.5)} {
		s := newStore(t)
		before := s.Snapshot()

		_, err := s.RecordUsage("4", q)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		after := s.Snapshot()
		assert.Equal(t, before.Items, after.Items)
		assert.Equal(t, before.History, after.History)
	}
}

func TestRecordUsage_ProductoInexistenteNoModificaNada(t *testing.T) {
	s := newStore(t)
	before := s.Snapshot()

	_, err := s.RecordUsage("no-existe", decimal.NewFromInt(1))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	after := s.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.History, after.History)
	assert.Equal(t, before.Notifications, after.Notifications)
}

func TestRecordUsage_DerivaAlertaEnLaMismaOperacion(t *testing.T) {
	s := newStore(t)
	require.Empty(t, s.Notifications())

	_, err := s.RecordUsage("4", decimal.NewFromInt(8))
	require.NoError(t, err)

	ns := s.Notifications()
	require.Len(t, ns, 1)
	assert.Equal(t, "alert-4", ns[0].ID)
	assert.Equal(t, entity.NotificationCritical, ns[0].Type)
	assert.Equal(t, 1, s.UnreadCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAllAsRead_NoReapareceSinLeer(t *testing.T) {
	s := newStore(t)
	_, err := s.RecordUsage("3", decimal.NewFromInt(1)) // 3 -> 2 (umbral 2)
	require.NoError(t, err)
	require.Equal(t, 1, s.UnreadCount())

	assert.Equal(t, 1, s.MarkAllAsRead())
	assert.Zero(t, s.UnreadCount())

	// Nueva pasada con el producto todavía bajo mínimos.
	_, err = s.RecordUsage("3", decimal.NewFromFloat(0.5))
	require.NoError(t, err)

	assert.Zero(t, s.UnreadCount(), "una alerta ya leída no vuelve a quedar sin leer")
	assert.Len(t, s.Notifications(), 1)
}

func TestAlertaResueltaSePreservaPorDefecto(t *testing.T) {
	s := newStore(t)
	_, err := s.RecordUsage("3", decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Len(t, s.Notifications(), 1)

	_, _, err = s.UpsertItem(inventory.UpsertItemInput{
		ID: "3", Name: "Queso Manchego DOP", Category: "Lácteos", Unit: "ruedas",
		Quantity: decimal.NewFromInt(5), MinThreshold: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	ns := s.Notifications()
	require.Len(t, ns, 1)
	assert.Equal(t, "alert-3", ns[0].ID)
}

func TestAlertaResueltaSePodaConPruneResolved(t *testing.T) {
	opts := alert.DefaultOptions()
	opts.PruneResolved = true
	s := newStore(t, inventory.WithAlertOptions(opts))
	_, err := s.RecordUsage("3", decimal.NewFromInt(1))
	require.NoError(t, err)

	_, _, err = s.UpsertItem(inventory.UpsertItemInput{
		ID: "3", Name: "Queso Manchego DOP", Unit: "ruedas",
		Quantity: decimal.NewFromInt(5), MinThreshold: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.Empty(t, s.Notifications())
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveItem / UpsertItem
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveItem_ConservaHistorial(t *testing.T) {
	s := newStore(t)

	assert.True(t, s.RemoveItem("1"))
	assert.False(t, s.RemoveItem("1"), "eliminar dos veces es un no-op")

	_, err := s.Item("1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, s.Items(), 3)

	history := s.History(0)
	require.Len(t, history, 1)
	assert.Equal(t, "1", history[0].ItemID, "el historial de un producto eliminado se conserva")
}

func TestUpsertItem_AltaConIDGenerado(t *testing.T) {
	s := newStore(t)
	price := decimal.NewFromInt(145)

	it, created, err := s.UpsertItem(inventory.UpsertItemInput{
		Name: " Vino Rioja Alta 890 ", Category: "Bodega", Unit: "botellas",
		Quantity: decimal.NewFromInt(12), MinThreshold: decimal.NewFromInt(18),
		PricePerUnit: &price,
	})
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, "id-1", it.ID)
	assert.Equal(t, "Vino Rioja Alta 890", it.Name)
	items := s.Items()
	require.Len(t, items, 5)
	assert.Equal(t, it.ID, items[4].ID, "los productos nuevos van al final")

	ns := s.Notifications()
	require.Len(t, ns, 1)
	assert.Equal(t, "alert-id-1", ns[0].ID)
}

func TestUpsertItem_ConservaPosicion(t *testing.T) {
	s := newStore(t)

	_, created, err := s.UpsertItem(inventory.UpsertItemInput{
		ID: " 2 ", Name: "AOVE Picual", Unit: "L",
		Quantity: decimal.NewFromInt(30), MinThreshold: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.False(t, created, "el ID se compara ya recortado")

	items := s.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "AOVE Picual", items[1].Name)
}

func TestUpsertItem_Validacion(t *testing.T) {
	s := newStore(t)
	neg := decimal.NewFromInt(-1)

	cases := map[string]inventory.UpsertItemInput{
		"sin nombre":        {Unit: "kg"},
		"sin unidad":        {Name: "Sal"},
		"cantidad negativa": {Name: "Sal", Unit: "kg", Quantity: neg},
		"umbral negativo":   {Name: "Sal", Unit: "kg", MinThreshold: neg},
		"precio negativo":   {Name: "Sal", Unit: "kg", PricePerUnit: &neg},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.UpsertItem(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Len(t, s.Items(), 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_DevuelveCopias(t *testing.T) {
	s := newStore(t)

	items := s.Items()
	items[0].Quantity = decimal.NewFromInt(999)

	it, _ := s.Item("1")
	assert.True(t, decimal.NewFromFloat(4.2).Equal(it.Quantity))
}

func TestHistory_Limite(t *testing.T) {
	s := newStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.RecordUsage("2", decimal.NewFromInt(1))
		require.NoError(t, err)
	}
	assert.Len(t, s.History(2), 2)
	assert.Len(t, s.History(0), 4)
	assert.Len(t, s.History(100), 4)
}

func TestRecordUsage_Concurrente(t *testing.T) {
	s := newStore(t, inventory.WithIDGenerator(func() string { return "x" }))

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.RecordUsage("2", decimal.NewFromInt(1))
		}()
	}
	wg.Wait()

	it, _ := s.Item("2")
	assert.True(t, decimal.NewFromInt(5).Equal(it.Quantity), "45 - 40 = 5, obtenido %s", it.Quantity)
	assert.Len(t, s.History(0), 41)
}
