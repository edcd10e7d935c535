package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/api/dto/v1/message"
	"github.com/osa911/teamchat/internal/api/mapper"
	"github.com/osa911/teamchat/internal/api/sanitization"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/service"
	"github.com/osa911/teamchat/internal/utils"
)

type MessageHandler struct {
	messages        *service.MessageService
	privateMessages *service.PrivateMessageService
}

func NewMessageHandler(messages *service.MessageService, privateMessages *service.PrivateMessageService) *MessageHandler {
	return &MessageHandler{messages: messages, privateMessages: privateMessages}
}

func (h *MessageHandler) SendChannelMessage(c *gin.Context) {
	req, ok := validated[message.SendMessageRequest](c, constants.ContextKeyChannelMessage)
	if !ok {
		return
	}

	entry, err := h.messages.AddMessageToChannel(c.Request.Context(), c.Param("id"), sanitization.SanitizeText(req.Text))
	if err != nil {
		logging.GetGlobalLogger().Error("SendChannelMessage: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to send message")
		return
	}
	utils.HandleCreated(c, resourcePath("channels", c.Param("id"), "messages"), mapper.ChannelMessageToResponse(entry))
}

func (h *MessageHandler) GetChannelMessages(c *gin.Context) {
	channelID := c.Param("id")
	entries, err := h.messages.GetChannelMessages(c.Request.Context(), channelID)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to get messages")
		return
	}
	utils.HandleSuccess(c, mapper.ChannelMessagesToResponse(channelID, entries))
}

// CreatePrivateMessage stores the record under its id, replacing any earlier message with that id
func (h *MessageHandler) CreatePrivateMessage(c *gin.Context) {
	req, ok := validated[message.CreatePrivateMessageRequest](c, constants.ContextKeyPrivateMessage)
	if !ok {
		return
	}

	created, err := h.privateMessages.CreatePrivateMessage(c.Request.Context(), sanitization.SanitizeRecord(req.Data))
	if err != nil {
		logging.GetGlobalLogger().Error("CreatePrivateMessage: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to send private message")
		return
	}
	utils.HandleCreated(c, resourcePath("conversations", "messages", created.MessageID), mapper.PrivateMessageToResponse(created))
}

func (h *MessageHandler) GetPrivateMessage(c *gin.Context) {
	found, err := h.privateMessages.GetPrivateMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to get private message")
		return
	}
	utils.HandleSuccess(c, mapper.PrivateMessageToResponse(found))
}
