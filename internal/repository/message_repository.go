package repository

import (
	"context"
	"fmt"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/store"
)

type messageRepository struct {
	store store.Store
}

// NewMessageRepository creates a new channel message repository instance
func NewMessageRepository(s store.Store) MessageRepository {
	return &messageRepository{store: s}
}

func (r *messageRepository) Append(ctx context.Context, channelID string, message models.ChannelMessage) (string, error) {
	return r.store.Push(ctx, store.Join(channelMessagesPath, channelID), message)
}

// List returns the channel's messages in key order. Generated keys are time
// ordered, so this is insertion order.
func (r *messageRepository) List(ctx context.Context, channelID string) ([]*models.ChannelMessageEntry, error) {
	snap, err := r.store.Get(ctx, store.Join(channelMessagesPath, channelID))
	if err != nil {
		return nil, err
	}

	entries := make([]*models.ChannelMessageEntry, 0)
	var decodeErr error
	snap.ForEach(func(child store.Snapshot) bool {
		entry := &models.ChannelMessageEntry{ID: child.Key}
		if err := child.Unmarshal(&entry.ChannelMessage); err != nil {
			decodeErr = fmt.Errorf("failed to decode message %s: %w", child.Key, err)
			return false
		}
		entries = append(entries, entry)
		return true
	})
	return entries, decodeErr
}

type privateMessageRepository struct {
	store store.Store
}

// NewPrivateMessageRepository creates a new private message repository instance
func NewPrivateMessageRepository(s store.Store) PrivateMessageRepository {
	return &privateMessageRepository{store: s}
}

func (r *privateMessageRepository) Put(ctx context.Context, messageID string, data models.Record) error {
	return r.store.Set(ctx, store.Join(privateMessagePath, messageID), data)
}

func (r *privateMessageRepository) Get(ctx context.Context, messageID string) (models.Record, error) {
	snap, err := r.store.Get(ctx, store.Join(privateMessagePath, messageID))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, fmt.Errorf("%w: private message %q", ErrNotFound, messageID)
	}
	data := models.Record{}
	if err := snap.Unmarshal(&data); err != nil {
		return nil, err
	}
	return data, nil
}
