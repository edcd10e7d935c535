package repository

import (
	"context"
	"fmt"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/store"
)

type channelRepository struct {
	store store.Store
	keys  *store.KeyGenerator
}

// NewChannelRepository creates a new channel repository instance
func NewChannelRepository(s store.Store) ChannelRepository {
	return &channelRepository{store: s, keys: store.NewKeyGenerator()}
}

// Create writes the channel and lists it under its team in one multi-path update.
// The key is generated locally so nothing is written when the update fails.
func (r *channelRepository) Create(ctx context.Context, channel models.Channel) (string, error) {
	uid := r.keys.Next()
	channel.UID = uid

	updates := map[string]interface{}{}
	updates[store.Join(channelsPath, uid)] = channel
	updates[teamPath(channel.TeamID, "channels", uid)] = true

	if err := r.store.Update(ctx, "", updates); err != nil {
		return "", fmt.Errorf("failed to write channel %s: %w", uid, err)
	}
	return uid, nil
}

func (r *channelRepository) Get(ctx context.Context, uid string) (*models.Channel, error) {
	snap, err := r.store.Get(ctx, store.Join(channelsPath, uid))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, nil
	}
	var channel models.Channel
	if err := snap.Unmarshal(&channel); err != nil {
		return nil, fmt.Errorf("failed to decode channel %s: %w", uid, err)
	}
	channel.UID = snap.Key
	return &channel, nil
}

func (r *channelRepository) ListByTeam(ctx context.Context, teamUID string) ([]*models.Channel, error) {
	snaps, err := r.store.Children(ctx, store.Query{
		Path:         channelsPath,
		OrderByChild: "teamId",
		EqualTo:      teamUID,
	})
	if err != nil {
		return nil, err
	}

	channels := make([]*models.Channel, 0, len(snaps))
	for _, snap := range snaps {
		var channel models.Channel
		if err := snap.Unmarshal(&channel); err != nil {
			return nil, fmt.Errorf("failed to decode channel %s: %w", snap.Key, err)
		}
		channel.UID = snap.Key
		channels = append(channels, &channel)
	}
	return channels, nil
}
