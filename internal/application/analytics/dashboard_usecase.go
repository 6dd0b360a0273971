// Package analytics contiene los casos de uso del panel de control.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/dto"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/alert"
	domaininv "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/inventory"
)

const (
	dashboardDays    = 7 // días del gráfico de consumo
	dashboardTopUsed = 5 // productos en el widget de más consumidos
)

// DashboardUseCase genera el resumen del panel de control.
//
// Fuente de datos: una única instantánea del Store, así todos los indicadores
// corresponden al mismo estado.
type DashboardUseCase struct {
	store        *inventory.Store
	expiryWindow time.Duration
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. expiryWindow <= 0 desactiva el indicador
// de caducidad próxima, igual que en las alertas.
func NewDashboardUseCase(store *inventory.Store, expiryWindow time.Duration) *DashboardUseCase {
	return &DashboardUseCase{store: store, expiryWindow: expiryWindow, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(_ context.Context) (*dto.DashboardSummaryDTO, error) {
	snap := uc.store.Snapshot()
	now := uc.now()

	m := domaininv.ComputeMetrics(snap.Items, now, uc.expiryWindow)

	// ── Consumo de los últimos días ───────────────────────────────────────────
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -(dashboardDays - 1))

	perDay := make(map[string]int, dashboardDays)
	type acc struct {
		dto.TopConsumedDTO
		first int // posición de primera aparición, para desempatar
	}
	perItem := make(map[string]*acc)
	for i, h := range snap.History {
		d := h.Date.In(now.Location())
		if d.Before(from) {
			continue
		}
		perDay[d.Format(dto.DateLayout)]++

		a, ok := perItem[h.ItemID]
		if !ok {
			a = &acc{TopConsumedDTO: dto.TopConsumedDTO{
				ItemID: h.ItemID, ItemName: h.ItemName, Unit: h.Unit, TotalConsumed: decimal.Zero,
			}, first: i}
			perItem[h.ItemID] = a
		}
		a.TotalConsumed = a.TotalConsumed.Add(h.QuantityConsumed)
		a.Entries++
	}

	daily := make([]dto.DailyUsageDTO, 0, dashboardDays)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dto.DateLayout)
		daily = append(daily, dto.DailyUsageDTO{Date: key, Entries: perDay[key]})
	}

	ranked := make([]*acc, 0, len(perItem))
	for _, a := range perItem {
		ranked = append(ranked, a)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Entries != ranked[j].Entries {
			return ranked[i].Entries > ranked[j].Entries
		}
		return ranked[i].first < ranked[j].first
	})
	if len(ranked) > dashboardTopUsed {
		ranked = ranked[:dashboardTopUsed]
	}
	top := make([]dto.TopConsumedDTO, 0, len(ranked))
	for _, a := range ranked {
		top = append(top, a.TopConsumedDTO)
	}

	low := domaininv.LowStock(snap.Items)
	lowOut := make([]dto.InventoryItemResponse, 0, len(low))
	for _, it := range low {
		lowOut = append(lowOut, dto.NewInventoryItemResponse(it))
	}

	return &dto.DashboardSummaryDTO{
		TotalValue:          m.TotalValue.Round(2),
		CriticalItems:       m.CriticalItems,
		UnreadNotifications: alert.UnreadCount(snap.Notifications),
		ExpiringSoon:        m.ExpiringSoon,
		ItemCount:           m.ItemCount,
		DailyUsage:          daily,
		TopConsumed:         top,
		LowStock:            lowOut,
	}, nil
}
