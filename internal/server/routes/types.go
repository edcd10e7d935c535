package routes

import (
	"github.com/osa911/teamchat/internal/api/handlers"
	"github.com/osa911/teamchat/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	User    *handlers.UserHandler
	Team    *handlers.TeamHandler
	Message *handlers.MessageHandler
	Health  *handlers.HealthHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	Auth       *middleware.AuthMiddleware
}

// GlobalConfig configures the middleware applied to every route
type GlobalConfig struct {
	AllowedOrigins []string
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding headers are believed
	TrustedProxies []string
	Production     bool
	RateLimit      middleware.RateLimitConfig
}
