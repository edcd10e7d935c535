package message

// SendMessageRequest represents the payload for posting to a channel
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// ChannelMessageResponse represents a channel message in API responses
type ChannelMessageResponse struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Owner     string `json:"owner"`
	Text      string `json:"text"`
	CreatedOn string `json:"createdOn"`
}

// ChannelMessagesResponse lists a channel's messages oldest first
type ChannelMessagesResponse struct {
	ChannelID string                   `json:"channelId"`
	Messages  []ChannelMessageResponse `json:"messages"`
}

// CreatePrivateMessageRequest carries the free-form message record
type CreatePrivateMessageRequest struct {
	Data map[string]interface{} `json:"data" binding:"required"`
}

// PrivateMessageResponse represents a stored private message
type PrivateMessageResponse struct {
	MessageID string                 `json:"messageId"`
	Data      map[string]interface{} `json:"data"`
}
