package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/handlers"
	"github.com/osa911/teamchat/internal/api/middleware"
)

// SetupUserRoutes configures profile and directory routes
func SetupUserRoutes(rg *gin.RouterGroup, user *handlers.UserHandler, validation *middleware.ValidationMiddleware) {
	users := rg.Group("/users")
	{
		users.GET("", user.ListUsers)
		users.GET("/search", user.SearchUsers)
		users.GET("/by-username/:username", user.GetUserByUsername)
	}

	profile := rg.Group("/profile")
	{
		profile.GET("", user.GetProfile)
		profile.POST("", validation.ValidateCreateProfileRequest(), user.CreateProfile)
		profile.PUT("", validation.ValidateUpdateProfileRequest(), user.UpdateProfile)
		profile.POST("/picture", user.UploadProfilePicture)
	}
}
