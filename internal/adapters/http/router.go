package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/handlers"
	"github.com/naadamki/quotehub/internal/adapters/http/middleware"
	"github.com/naadamki/quotehub/internal/platform/config"
	"github.com/naadamki/quotehub/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles quote endpoints.
	QuoteHandler *handlers.QuoteHandler

	// AuthorHandler handles author endpoints.
	AuthorHandler *handlers.AuthorHandler

	// TagHandler handles tag endpoints.
	TagHandler *handlers.TagHandler

	// CategoryHandler handles category endpoints.
	CategoryHandler *handlers.CategoryHandler

	// UserHandler handles user and favorites endpoints.
	UserHandler *handlers.UserHandler

	// SearchHandler handles search endpoints.
	SearchHandler *handlers.SearchHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline (applied per-route or globally)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no timeout for probes
//   - /api/v1/ (public API): Catalog and search endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Health endpoints stay outside the timeout so probes never race it.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers catalog and search API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	if cfg.AuthorHandler != nil {
		cfg.AuthorHandler.RegisterAuthorRoutes(rg)
	}

	if cfg.TagHandler != nil {
		cfg.TagHandler.RegisterTagRoutes(rg)
	}

	if cfg.CategoryHandler != nil {
		cfg.CategoryHandler.RegisterCategoryRoutes(rg)
	}

	if cfg.UserHandler != nil {
		cfg.UserHandler.RegisterUserRoutes(rg)
	}

	if cfg.SearchHandler != nil {
		cfg.SearchHandler.RegisterSearchRoutes(rg)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
