package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/analytics"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/usecase"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store       *inventory.Store
	Reports     *inventory.ReportService
	DashboardUC *appanalytics.DashboardUseCase
	AssistantUC *usecase.AssistantUseCase
	Suppliers   repository.SupplierRepository
	Metrics     nethttp.Handler // nil = /metrics no se expone
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Inventario e historial
	inventoryHandler := NewInventoryHandler(deps.Store, deps.Reports)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Upsert)
	inv.Get("/categories", inventoryHandler.Categories)
	inv.Get("/report.pdf", inventoryHandler.Report)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Delete("/:id", inventoryHandler.Delete)
	inv.Post("/:id/usage", inventoryHandler.RecordUsage)
	api.Get("/usage", inventoryHandler.Usage)

	// Notificaciones
	notificationHandler := NewNotificationHandler(deps.Store)
	api.Get("/notifications", notificationHandler.List)
	api.Post("/notifications/read-all", notificationHandler.ReadAll)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Proveedores
	supplierHandler := NewSupplierHandler(deps.Suppliers)
	api.Get("/suppliers", supplierHandler.List)
	api.Get("/suppliers/:id", supplierHandler.GetByID)

	// Asistente
	assistantHandler := NewAssistantHandler(deps.AssistantUC)
	assistant := api.Group("/assistant")
	assistant.Post("/chat", assistantHandler.Chat)
	assistant.Get("/chat", assistantHandler.Messages)
	assistant.Delete("/chat", assistantHandler.ResetChat)
	assistant.Post("/order-suggestion", assistantHandler.SuggestOrders)
	assistant.Get("/order-suggestion", assistantHandler.LastSuggestion)
	assistant.Delete("/order-suggestion", assistantHandler.ClearSuggestion)
	assistant.Post("/scan", assistantHandler.Scan)
	assistant.Get("/status", assistantHandler.Status)
}
