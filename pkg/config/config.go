package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	AI      AIConfig
	Seed    SeedConfig
	Alerts  AlertsConfig
	Metrics MetricsConfig
	Docs    DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; "*" = cualquiera
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig proveedor del modelo generativo y sus credenciales.
type AIConfig struct {
	Provider             string // gemini | anthropic
	GeminiAPIKey         string
	GeminiModel          string
	GeminiBaseURL        string
	AnthropicAPIKey      string
	AnthropicModel       string
	AnthropicBaseURL     string
	Timeout              time.Duration // por llamada
	ChatThinkingBudget   int
	OrdersThinkingBudget int
}

// SeedConfig origen del estado inicial. File vacío usa la semilla embebida.
type SeedConfig struct {
	File string
}

// AlertsConfig derivación de alertas.
type AlertsConfig struct {
	PruneResolved bool          // elimina alertas derivadas cuya condición ya no se cumple
	ExpiryEnabled bool          // añade alertas de caducidad a las de stock crítico
	ExpiryWindow  time.Duration // ventana de caducidad próxima; 0 la desactiva
}

// MetricsConfig exposición Prometheus.
type MetricsConfig struct {
	Enabled bool
}

// DocsConfig documentación OpenAPI servida en /docs.
type DocsConfig struct {
	SwaggerFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, AI_PROVIDER, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "asistente-cocina-ia"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		AI: AIConfig{
			Provider:             strings.ToLower(getString(v, "AI_PROVIDER", "gemini")),
			GeminiAPIKey:         getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:          getString(v, "GEMINI_MODEL", "gemini-3-pro-preview"),
			GeminiBaseURL:        getString(v, "GEMINI_BASE_URL", ""),
			AnthropicAPIKey:      getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:       getString(v, "ANTHROPIC_MODEL", "claude-sonnet-4-5"),
			AnthropicBaseURL:     getString(v, "ANTHROPIC_BASE_URL", ""),
			Timeout:              time.Duration(getInt(v, "AI_TIMEOUT_SECONDS", 60)) * time.Second,
			ChatThinkingBudget:   getInt(v, "AI_CHAT_THINKING_BUDGET", 16000),
			OrdersThinkingBudget: getInt(v, "AI_ORDERS_THINKING_BUDGET", 24000),
		},
		Seed: SeedConfig{
			File: getString(v, "SEED_FILE", ""),
		},
		Alerts: AlertsConfig{
			PruneResolved: getBool(v, "ALERTS_PRUNE_RESOLVED", false),
			ExpiryEnabled: getBool(v, "ALERTS_EXPIRY_ENABLED", false),
			ExpiryWindow:  time.Duration(getInt(v, "ALERTS_EXPIRY_WINDOW_DAYS", 7)) * 24 * time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		Docs: DocsConfig{
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("config: AI_PROVIDER no soportado: %q", c.AI.Provider)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT fuera de rango: %d", c.HTTP.Port)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("config: AI_TIMEOUT_SECONDS debe ser positivo")
	}
	if c.Alerts.ExpiryWindow < 0 {
		return fmt.Errorf("config: ALERTS_EXPIRY_WINDOW_DAYS no puede ser negativo")
	}
	return nil
}

// AllowedOrigins lista de orígenes CORS normalizada.
func (c HTTPConfig) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
