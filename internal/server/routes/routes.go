package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/osa911/teamchat/internal/api/middleware"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/telemetry"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	// Public routes (no auth required)
	SetupHealthRoutes(router, h.Health)
	SetupPublicRoutes(router.Group("/api/v1"), h)

	// Protected API routes (auth required)
	SetupProtectedRoutes(router, h, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures client IP resolution and the middleware that applies
// to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, cfg GlobalConfig) error {
	// Forwarding headers are only honoured from trusted proxies; X-Real-IP wins.
	router.RemoteIPHeaders = []string{"X-Real-IP", "X-Forwarded-For"}
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(telemetry.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.Production))
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit))
	return nil
}
