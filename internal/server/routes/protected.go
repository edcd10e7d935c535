package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupProtectedRoutes configures routes that require authentication
func SetupProtectedRoutes(router *gin.Engine, h *Handlers, m *Middleware) {
	protected := router.Group("/api/v1")
	protected.Use(m.Auth.RequireAuth())

	SetupUserRoutes(protected, h.User, m.Validation)
	SetupTeamRoutes(protected, h.Team, m.Validation)
	SetupMessageRoutes(protected, h.Message, m.Validation)
}
