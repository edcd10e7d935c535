package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes configures the routes reachable without a session
func SetupPublicRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/usernames/:username", h.User.UsernameExists)
}
