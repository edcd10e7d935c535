package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/handlers"
	"github.com/osa911/teamchat/internal/api/middleware"
)

// SetupMessageRoutes configures channel and private message routes
func SetupMessageRoutes(rg *gin.RouterGroup, message *handlers.MessageHandler, validation *middleware.ValidationMiddleware) {
	channels := rg.Group("/channels")
	{
		channels.GET("/:id/messages", message.GetChannelMessages)
		channels.POST("/:id/messages", validation.ValidateSendMessageRequest(), message.SendChannelMessage)
	}

	conversations := rg.Group("/conversations")
	{
		conversations.POST("/messages", validation.ValidateCreatePrivateMessageRequest(), message.CreatePrivateMessage)
		conversations.GET("/messages/:id", message.GetPrivateMessage)
	}
}
