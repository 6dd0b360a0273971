package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/analytics"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/usecase"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/alert"
	infraai "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/infrastructure/ai"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/infrastructure/metrics"
	infrapdf "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/infrastructure/pdf"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/infrastructure/seed"
	httpRouter "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/interfaces/http"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/pkg/config"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/pkg/logger"
)

// Margen sobre el tamaño máximo de imagen para las cabeceras multipart.
const bodyLimit = usecase.MaxImageBytes + 1<<20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	data, err := seed.NewYAMLSeedRepository(cfg.Seed.File).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Seed.File).Msg("cargar semilla")
	}

	rec := metrics.NewRecorder(true)
	store := inventory.NewStore(
		inventory.WithAlertOptions(alert.Options{
			PruneResolved: cfg.Alerts.PruneResolved,
			ExpiryAlerts:  cfg.Alerts.ExpiryEnabled,
			ExpiryWindow:  cfg.Alerts.ExpiryWindow,
		}),
		inventory.WithMetrics(rec),
	)
	store.Seed(data.Items, data.Usage)
	log.Info().
		Int("items", len(data.Items)).
		Int("usage", len(data.Usage)).
		Int("suppliers", len(data.Suppliers)).
		Int("unread", store.UnreadCount()).
		Msg("inventario cargado")

	llm, err := infraai.NewLLMService(cfg.AI.Provider,
		infraai.Options{
			APIKey:               cfg.AI.GeminiAPIKey,
			Model:                cfg.AI.GeminiModel,
			BaseURL:              cfg.AI.GeminiBaseURL,
			ChatThinkingBudget:   cfg.AI.ChatThinkingBudget,
			OrdersThinkingBudget: cfg.AI.OrdersThinkingBudget,
		},
		infraai.Options{
			APIKey:               cfg.AI.AnthropicAPIKey,
			Model:                cfg.AI.AnthropicModel,
			BaseURL:              cfg.AI.AnthropicBaseURL,
			ChatThinkingBudget:   cfg.AI.ChatThinkingBudget,
			OrdersThinkingBudget: cfg.AI.OrdersThinkingBudget,
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de IA")
	}
	if cfg.AI.GeminiAPIKey == "" && cfg.AI.AnthropicAPIKey == "" {
		log.Warn().Msg("sin API key del modelo: el asistente responderá con textos de reserva")
	}

	assistantUC := usecase.NewAssistantUseCase(
		rec.InstrumentLLM(llm), store, cfg.AI.Timeout, log.Component("assistant"),
	)
	dashboardUC := appanalytics.NewDashboardUseCase(store, cfg.Alerts.ExpiryWindow)
	reports := inventory.NewReportService(store, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), cfg.Alerts.ExpiryWindow)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.AllowedOrigins()}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Asistente de Cocina IA",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger no disponible")
	}

	deps := httpRouter.RouterDeps{
		Store:       store,
		Reports:     reports,
		DashboardUC: dashboardUC,
		AssistantUC: assistantUC,
		Suppliers:   seed.NewSupplierRepository(data.Suppliers),
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = rec.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
