package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/session"
	"github.com/osa911/teamchat/internal/store"
)

var fixedNow = time.Date(2024, time.March, 1, 13, 2, 3, 0, time.UTC)

func pinClock(t *testing.T) {
	t.Helper()
	original := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = original })
}

func signedIn(uid string) context.Context {
	return session.WithIdentity(context.Background(), &session.Identity{
		UID:         uid,
		Email:       uid + "@example.com",
		DisplayName: "Display " + uid,
	})
}

type fakePictures struct {
	url      string
	err      error
	uploaded []string
}

func (f *fakePictures) Upload(ctx context.Context, uid, filename, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, uid+"/"+filename)
	return f.url, nil
}

type fixture struct {
	store    *store.MemoryStore
	pictures *fakePictures
	users    *UserService
	teams    *TeamService
	messages *MessageService
	private  *PrivateMessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pinClock(t)

	mem := store.NewMemoryStore()
	sessions := session.ContextProvider{}
	pictures := &fakePictures{url: "https://cdn.example.com/picture.png"}
	teamRepo := repository.NewTeamRepository(mem, models.MembershipTransaction)

	return &fixture{
		store:    mem,
		pictures: pictures,
		users:    NewUserService(repository.NewUserRepository(mem), teamRepo, sessions, pictures, time.UTC),
		teams:    NewTeamService(teamRepo, repository.NewChannelRepository(mem), sessions),
		messages: NewMessageService(repository.NewMessageRepository(mem), sessions),
		private:  NewPrivateMessageService(repository.NewPrivateMessageRepository(mem), sessions, ""),
	}
}

// createUser registers a profile as its own signed in user.
func (f *fixture) createUser(t *testing.T, profile models.UserProfile) {
	t.Helper()
	if err := f.users.CreateUserProfile(signedIn(profile.UID), profile); err != nil {
		t.Fatalf("create user %s: %v", profile.UID, err)
	}
}

var errUnavailable = errors.New("store unavailable")
