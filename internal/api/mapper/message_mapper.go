package mapper

import (
	"github.com/osa911/teamchat/internal/api/dto/v1/message"
	"github.com/osa911/teamchat/internal/models"
)

// ChannelMessageToResponse converts a stored channel message to its DTO
func ChannelMessageToResponse(m *models.ChannelMessageEntry) *message.ChannelMessageResponse {
	if m == nil {
		return nil
	}

	return &message.ChannelMessageResponse{
		ID:        m.ID,
		UID:       m.UID,
		Owner:     m.Owner,
		Text:      m.Text,
		CreatedOn: m.CreatedOn,
	}
}

// ChannelMessagesToResponse keeps the stored order
func ChannelMessagesToResponse(channelID string, messages []*models.ChannelMessageEntry) *message.ChannelMessagesResponse {
	result := &message.ChannelMessagesResponse{
		ChannelID: channelID,
		Messages:  make([]message.ChannelMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		if m == nil {
			continue
		}
		result.Messages = append(result.Messages, *ChannelMessageToResponse(m))
	}
	return result
}

// PrivateMessageToResponse converts a stored private message to its DTO
func PrivateMessageToResponse(m *models.PrivateMessage) *message.PrivateMessageResponse {
	if m == nil {
		return nil
	}

	return &message.PrivateMessageResponse{
		MessageID: m.MessageID,
		Data:      m.Data,
	}
}
