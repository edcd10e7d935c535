package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/session"
)

// isoMillis matches the millisecond UTC form browsers emit for ISO timestamps.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type MessageService struct {
	messages repository.MessageRepository
	sessions session.Provider
	logger   *logging.Logger
}

func NewMessageService(messages repository.MessageRepository, sessions session.Provider) *MessageService {
	return &MessageService{
		messages: messages,
		sessions: sessions,
		logger:   logging.GetGlobalLogger(),
	}
}

// AddMessageToChannel appends text to the channel as the signed in user. The
// message is stamped with the local clock.
func (s *MessageService) AddMessageToChannel(ctx context.Context, channelID, text string) (*models.ChannelMessageEntry, error) {
	identity, ok := s.sessions.Current(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: cannot post a message without a session", ErrAuth)
	}
	if err := requireKey("channel id", channelID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalid("message text is required")
	}

	owner := identity.Email
	if owner == "" {
		owner = "unknown"
	}
	message := models.ChannelMessage{
		UID:       identity.UID,
		Owner:     owner,
		Text:      text,
		CreatedOn: now().UTC().Format(isoMillis),
	}

	id, err := s.messages.Append(ctx, channelID, message)
	if err != nil {
		s.logger.Error("AddMessageToChannel: failed for channel=%s uid=%s: %v", channelID, identity.UID, err)
		return nil, fmt.Errorf("failed to send message: %w", storeError(err))
	}
	return &models.ChannelMessageEntry{ID: id, ChannelMessage: message}, nil
}

// GetChannelMessages returns the channel's messages oldest first. A channel with
// no messages yields an empty slice.
func (s *MessageService) GetChannelMessages(ctx context.Context, channelID string) ([]*models.ChannelMessageEntry, error) {
	if err := requireKey("channel id", channelID); err != nil {
		return nil, err
	}
	entries, err := s.messages.List(ctx, channelID)
	if err != nil {
		s.logger.Error("GetChannelMessages: failed for channel=%s: %v", channelID, err)
		return nil, fmt.Errorf("failed to fetch channel messages: %w", storeError(err))
	}
	return entries, nil
}

type PrivateMessageService struct {
	messages   repository.PrivateMessageRepository
	sessions   session.Provider
	precedence models.FieldPrecedence
	logger     *logging.Logger
}

// NewPrivateMessageService defaults to letting the session identity win over
// caller supplied uid and username.
func NewPrivateMessageService(messages repository.PrivateMessageRepository, sessions session.Provider, precedence models.FieldPrecedence) *PrivateMessageService {
	if precedence == "" {
		precedence = models.PrecedenceIdentity
	}
	return &PrivateMessageService{
		messages:   messages,
		sessions:   sessions,
		precedence: precedence,
		logger:     logging.GetGlobalLogger(),
	}
}

// CreatePrivateMessage stores data at privateMessage/{data.id}, overwriting any
// message already stored there. data must carry string id and type fields.
func (s *PrivateMessageService) CreatePrivateMessage(ctx context.Context, data models.Record) (*models.PrivateMessage, error) {
	identity, ok := s.sessions.Current(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: cannot send a private message without a session", ErrAuth)
	}
	if data == nil {
		return nil, invalid("message data is required")
	}
	messageID := data.String("id")
	if err := requireKey("message id", messageID); err != nil {
		return nil, err
	}
	if data.String("type") == "" {
		return nil, invalid("message type is required")
	}

	merged := models.Record{
		"createdOn": now().UnixMilli(),
		"username":  identity.DisplayName,
		"uid":       identity.UID,
	}
	for k, v := range data {
		merged[k] = v
	}
	if s.precedence == models.PrecedenceIdentity {
		merged["username"] = identity.DisplayName
		merged["uid"] = identity.UID
	}

	if err := s.messages.Put(ctx, messageID, merged); err != nil {
		s.logger.Error("CreatePrivateMessage: failed for id=%s uid=%s: %v", messageID, identity.UID, err)
		return nil, fmt.Errorf("failed to create private message: %w", storeError(err))
	}
	return &models.PrivateMessage{MessageID: messageID, Data: merged}, nil
}

func (s *PrivateMessageService) GetPrivateMessage(ctx context.Context, messageID string) (*models.PrivateMessage, error) {
	if err := requireKey("message id", messageID); err != nil {
		return nil, err
	}
	data, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch private message: %w", storeError(err))
	}
	return &models.PrivateMessage{MessageID: messageID, Data: data}, nil
}
