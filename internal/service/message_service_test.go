package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/session"
	"github.com/osa911/teamchat/internal/store"
)

func TestAddMessageToChannel(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn("u1")

	sent, err := f.messages.AddMessageToChannel(ctx, "c1", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, "u1", sent.UID)
	assert.Equal(t, "u1@example.com", sent.Owner)
	assert.Equal(t, "2024-03-01T13:02:03.000Z", sent.CreatedOn)

	messages, err := f.messages.GetChannelMessages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, *sent, *messages[0])
}

func TestAddMessageToChannel_OwnerFallsBack(t *testing.T) {
	f := newFixture(t)
	ctx := session.WithIdentity(context.Background(), &session.Identity{UID: "u1"})

	sent, err := f.messages.AddMessageToChannel(ctx, "c1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "unknown", sent.Owner)
}

func TestAddMessageToChannel_Rejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		ctx     context.Context
		channel string
		text    string
		wantErr error
	}{
		{"no session", context.Background(), "c1", "hello", ErrAuth},
		{"empty session", session.WithIdentity(context.Background(), &session.Identity{}), "c1", "hello", ErrAuth},
		{"missing channel", signedIn("u1"), "", "hello", ErrValidation},
		{"blank text", signedIn("u1"), "c1", " \n", ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.messages.AddMessageToChannel(tt.ctx, tt.channel, tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetChannelMessages_InsertionOrder(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn("u1")

	texts := []string{"one", "two", "three", "four", "five"}
	for i, text := range texts {
		author := signedIn([]string{"u1", "u2"}[i%2])
		_, err := f.messages.AddMessageToChannel(author, "c1", text)
		require.NoError(t, err)
	}

	messages, err := f.messages.GetChannelMessages(ctx, "c1")
	require.NoError(t, err)
	got := make([]string, 0, len(messages))
	for _, m := range messages {
		got = append(got, m.Text)
	}
	assert.Equal(t, texts, got)
	assert.Equal(t, "u2", messages[1].UID)
}

func TestGetChannelMessages_Empty(t *testing.T) {
	f := newFixture(t)

	messages, err := f.messages.GetChannelMessages(context.Background(), "quiet")
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)

	f.store.FailNext(store.OpGet, errUnavailable)
	_, err = f.messages.GetChannelMessages(context.Background(), "quiet")
	assert.ErrorIs(t, err, ErrRemoteStore)
}

func TestCreatePrivateMessage_Precedence(t *testing.T) {
	tests := []struct {
		name         string
		precedence   models.FieldPrecedence
		wantUID      string
		wantUsername string
	}{
		{"identity wins", models.PrecedenceIdentity, "u1", "Display u1"},
		{"caller wins", models.PrecedenceCaller, "forged", "mallory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewPrivateMessageService(repository.NewPrivateMessageRepository(f.store), session.ContextProvider{}, tt.precedence)

			msg, err := svc.CreatePrivateMessage(signedIn("u1"), models.Record{
				"id":       "m1",
				"type":     "text",
				"text":     "hi",
				"uid":      "forged",
				"username": "mallory",
			})
			require.NoError(t, err)
			assert.Equal(t, "m1", msg.MessageID)
			assert.Equal(t, tt.wantUID, msg.Data.String("uid"))
			assert.Equal(t, tt.wantUsername, msg.Data.String("username"))

			stored, err := svc.GetPrivateMessage(context.Background(), "m1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantUID, stored.Data.String("uid"))
			assert.Equal(t, tt.wantUsername, stored.Data.String("username"))
			assert.Equal(t, "hi", stored.Data.String("text"))
			assert.EqualValues(t, fixedNow.UnixMilli(), stored.Data["createdOn"])
		})
	}
}

func TestCreatePrivateMessage_DefaultsToIdentity(t *testing.T) {
	f := newFixture(t)

	msg, err := f.private.CreatePrivateMessage(signedIn("u1"), models.Record{"id": "m1", "type": "text", "uid": "forged"})
	require.NoError(t, err)
	assert.Equal(t, "u1", msg.Data.String("uid"))
}

func TestCreatePrivateMessage_OverwritesExistingKey(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn("u1")

	_, err := f.private.CreatePrivateMessage(ctx, models.Record{"id": "m1", "type": "text", "text": "first"})
	require.NoError(t, err)
	_, err = f.private.CreatePrivateMessage(ctx, models.Record{"id": "m1", "type": "text", "text": "second"})
	require.NoError(t, err)

	stored, err := f.private.GetPrivateMessage(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "second", stored.Data.String("text"))
}

func TestCreatePrivateMessage_Rejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		ctx     context.Context
		data    models.Record
		wantErr error
	}{
		{"no session", context.Background(), models.Record{"id": "m1", "type": "text"}, ErrAuth},
		{"nil data", signedIn("u1"), nil, ErrValidation},
		{"missing id", signedIn("u1"), models.Record{"type": "text"}, ErrValidation},
		{"non string id", signedIn("u1"), models.Record{"id": 7, "type": "text"}, ErrValidation},
		{"missing type", signedIn("u1"), models.Record{"id": "m1"}, ErrValidation},
		{"id with a slash", signedIn("u1"), models.Record{"id": "a/b", "type": "text"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.private.CreatePrivateMessage(tt.ctx, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.private.GetPrivateMessage(context.Background(), "m1")
	assert.ErrorIs(t, err, ErrNotFound, "rejected messages are never written")
}
