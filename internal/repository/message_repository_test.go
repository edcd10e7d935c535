package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/store"
)

func TestMessageRepository_AppendKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(store.NewMemoryStore())

	texts := []string{"first", "second", "third", "fourth"}
	ids := make([]string, 0, len(texts))
	for _, text := range texts {
		id, err := repo.Append(ctx, "c1", models.ChannelMessage{UID: "u1", Owner: "alice", Text: text})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	entries, err := repo.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, entries, len(texts))
	for i, entry := range entries {
		assert.Equal(t, ids[i], entry.ID)
		assert.Equal(t, texts[i], entry.Text)
		assert.Equal(t, "alice", entry.Owner)
	}
}

func TestMessageRepository_EmptyChannel(t *testing.T) {
	repo := NewMessageRepository(store.NewMemoryStore())

	entries, err := repo.List(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestMessageRepository_ChannelsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(store.NewMemoryStore())

	_, err := repo.Append(ctx, "c1", models.ChannelMessage{Text: "in c1"})
	require.NoError(t, err)
	_, err = repo.Append(ctx, "c2", models.ChannelMessage{Text: "in c2"})
	require.NoError(t, err)

	entries, err := repo.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "in c1", entries[0].Text)
}

func TestPrivateMessageRepository_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewPrivateMessageRepository(store.NewMemoryStore())

	require.NoError(t, repo.Put(ctx, "m1", models.Record{"text": "hi", "mood": "happy"}))
	require.NoError(t, repo.Put(ctx, "m1", models.Record{"text": "bye"}))

	data, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "bye", data.String("text"))
	_, hasMood := data["mood"]
	assert.False(t, hasMood)

	_, err = repo.Get(ctx, "m2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChannelRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := NewChannelRepository(mem)

	general, err := repo.Create(ctx, models.Channel{TeamID: "t1", Name: "general", Owner: "u1", Members: map[string]bool{"u1": true}})
	require.NoError(t, err)
	random, err := repo.Create(ctx, models.Channel{TeamID: "t1", Name: "random", Owner: "u1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Channel{TeamID: "t2", Name: "elsewhere", Owner: "u2"})
	require.NoError(t, err)

	channel, err := repo.Get(ctx, general)
	require.NoError(t, err)
	require.NotNil(t, channel)
	assert.Equal(t, general, channel.UID)
	assert.Equal(t, "general", channel.Name)

	channels, err := repo.ListByTeam(ctx, "t1")
	require.NoError(t, err)
	ids := []string{}
	for _, c := range channels {
		ids = append(ids, c.UID)
	}
	assert.Equal(t, []string{general, random}, ids)

	index, err := mem.Get(ctx, "teams/t1/channels")
	require.NoError(t, err)
	assert.Equal(t, []string{general, random}, index.Keys())

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChannelRepository_CreateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := NewChannelRepository(mem)

	mem.FailNext(store.OpUpdate, errors.New("write rejected"))
	_, err := repo.Create(ctx, models.Channel{TeamID: "t1", Name: "general"})
	require.Error(t, err)

	channels, err := mem.Get(ctx, "channels")
	require.NoError(t, err)
	assert.False(t, channels.Exists(), string(channels.Raw))
	index, err := mem.Get(ctx, "teams/t1")
	require.NoError(t, err)
	assert.False(t, index.Exists())

	uid, err := repo.Create(ctx, models.Channel{TeamID: "t1", Name: "general"})
	require.NoError(t, err)
	listed, err := repo.ListByTeam(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, uid, listed[0].UID)
}
