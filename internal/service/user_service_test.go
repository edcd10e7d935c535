package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/store"
)

func TestCreateUserProfile_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		ctx     context.Context
		profile models.UserProfile
		wantErr error
	}{
		{"no session", context.Background(), models.UserProfile{UID: "u1"}, ErrAuth},
		{"missing uid", signedIn("u1"), models.UserProfile{Username: "alice"}, ErrValidation},
		{"uid of someone else", signedIn("u1"), models.UserProfile{UID: "u2"}, ErrValidation},
		{"uid not usable as key", signedIn("a/b"), models.UserProfile{UID: "a/b"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.users.CreateUserProfile(tt.ctx, tt.profile)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	count, err := f.users.FetchTotalUserCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "rejected profiles are never written")
}

func TestCreateUserProfile_MergesDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn("u1")

	require.NoError(t, f.users.CreateUserProfile(ctx, models.UserProfile{
		UID:      "u1",
		Username: "alice",
		Email:    "alice@example.com",
	}))

	p, err := f.users.GetUserProfileByUID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.UserProfile{
		UID:       "u1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedOn: fixedNow.UnixMilli(),
	}, p.UserProfile)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "alice", p.DisplayName)
}

func TestCreateUserProfile_KeepsSuppliedCreatedOn(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, models.UserProfile{UID: "u1", Username: "alice", CreatedOn: 42})

	p, err := f.users.GetUserProfileByUID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.CreatedOn)
}

func TestGetUserProfileByUID_Missing(t *testing.T) {
	f := newFixture(t)

	p, err := f.users.GetUserProfileByUID(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetUserProfileByUsername(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, models.UserProfile{UID: "u1", Username: "alice"})

	p, err := f.users.GetUserProfileByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UID)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "alice", p.Username)

	_, err = f.users.GetUserProfileByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRemoteStore)
}

func TestFetchUsersWithPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.FetchUsersWithPagination(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound, "empty directory")

	for _, uid := range []string{"e", "c", "a", "d", "b"} {
		f.createUser(t, models.UserProfile{UID: uid, Username: "user-" + uid})
	}

	tests := []struct {
		name    string
		page    int
		perPage int
		want    []string
		wantErr error
	}{
		{name: "first page", page: 1, perPage: 2, want: []string{"a", "b"}},
		{name: "second page", page: 2, perPage: 2, want: []string{"c", "d"}},
		{name: "partial last page", page: 3, perPage: 2, want: []string{"e"}},
		{name: "past the end", page: 4, perPage: 2, want: []string{}},
		{name: "one big page", page: 1, perPage: 50, want: []string{"a", "b", "c", "d", "e"}},
		{name: "zero page", page: 0, perPage: 2, wantErr: ErrValidation},
		{name: "zero per page", page: 1, perPage: 0, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, err := f.users.FetchUsersWithPagination(ctx, tt.page, tt.perPage)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(profiles))
			for _, p := range profiles {
				ids = append(ids, p.ID)
				assert.Equal(t, "Mar 1st 2024, 1:02:03 PM", p.CreatedOnFormatted)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestUpdateUserProfile(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, models.UserProfile{UID: "u1", Username: "alice"})

	first, last := "Alice", "Liddell"
	p, err := f.users.UpdateUserProfile(context.Background(), "u1", models.ProfileUpdate{FirstName: &first, LastName: &last})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Alice Liddell", p.DisplayName)
	assert.Equal(t, "alice", p.Username)
	assert.NotZero(t, p.UpdatedOn)
}

func TestUpdateUserProfile_PropagatesStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, models.UserProfile{UID: "u1", Username: "alice"})
	f.store.FailNext(store.OpUpdate, errUnavailable)

	first := "Alice"
	p, err := f.users.UpdateUserProfile(context.Background(), "u1", models.ProfileUpdate{FirstName: &first})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrRemoteStore)
	assert.ErrorIs(t, err, errUnavailable)

	_, err = f.users.UpdateUserProfile(context.Background(), "", models.ProfileUpdate{FirstName: &first})
	assert.ErrorIs(t, err, ErrValidation)
}

// Profiles are stored under their uid, so the username check never sees them.
func TestCheckIfUsernameExists_DoesNotFindStoredUsernames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, models.UserProfile{UID: "u1", Username: "alice"})

	exists, err := f.users.CheckIfUsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists, "a taken username reads as free")

	exists, err = f.users.CheckIfUsernameExists(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, exists, "only a key equal to a uid matches")

	_, err = f.users.CheckIfUsernameExists(ctx, "bad.name")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTeamMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teamUID, err := f.teams.AddTeam(ctx, "u1", "Rockets")
	require.NoError(t, err)

	require.NoError(t, f.users.AddTeamMember(ctx, teamUID, "u2"))
	members, err := f.teams.GetTeamMembers(ctx, teamUID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, members)

	require.NoError(t, f.users.RemoveChannelMember(ctx, teamUID, "u2"))
	members, err = f.teams.GetTeamMembers(ctx, teamUID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, members)

	tests := []struct {
		name    string
		team    string
		user    string
		wantErr error
	}{
		{"unknown team", "nope", "u2", ErrNotFound},
		{"missing user", teamUID, "", ErrValidation},
		{"missing team", "", "u2", ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, f.users.AddTeamMember(ctx, tt.team, tt.user), tt.wantErr)
			assert.ErrorIs(t, f.users.RemoveChannelMember(ctx, tt.team, tt.user), tt.wantErr)
		})
	}
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.SearchUsers(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound, "empty directory")

	f.createUser(t, models.UserProfile{UID: "u1", Username: "Alice"})
	f.createUser(t, models.UserProfile{UID: "u2", Username: "malcolm"})
	f.createUser(t, models.UserProfile{UID: "u3", Username: "bob"})

	tests := []struct {
		search string
		want   []string
	}{
		{"AL", []string{"u1", "u2"}},
		{"bob", []string{"u3"}},
		{"", []string{"u1", "u2", "u3"}},
		{"zed", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			profiles, err := f.users.SearchUsers(ctx, tt.search)
			require.NoError(t, err)
			ids := make([]string, 0, len(profiles))
			for _, p := range profiles {
				ids = append(ids, p.ID)
				assert.NotEmpty(t, p.CreatedOnFormatted)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFetchTotalUserCount(t *testing.T) {
	f := newFixture(t)
	for _, uid := range []string{"u1", "u2", "u3"} {
		f.createUser(t, models.UserProfile{UID: uid, Username: uid})
	}

	count, err := f.users.FetchTotalUserCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	f.store.FailNext(store.OpGet, errUnavailable)
	_, err = f.users.FetchTotalUserCount(context.Background())
	assert.ErrorIs(t, err, ErrRemoteStore)
}

func TestUpdateUserProfilePicture(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, models.UserProfile{UID: "u1", Username: "alice"})

	url, err := f.users.UpdateUserProfilePicture(signedIn("u1"), "me.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, f.pictures.url, url)
	assert.Equal(t, []string{"u1/me.png"}, f.pictures.uploaded)

	p, err := f.users.GetUserProfileByUID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, url, p.ProfilePictureURL)

	_, err = f.users.UpdateUserProfilePicture(context.Background(), "me.png", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrAuth)

	f.pictures.err = errUnavailable
	_, err = f.users.UpdateUserProfilePicture(signedIn("u1"), "me.png", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrRemoteStore)
}

func TestUserService_StoreFailuresAreRemoteStoreErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.FailNext(store.OpGet, errUnavailable)
	_, err := f.users.GetUserProfileByUID(ctx, "u1")
	assert.ErrorIs(t, err, ErrRemoteStore)

	f.store.FailNext(store.OpChildren, errUnavailable)
	_, err = f.users.GetUserProfileByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrRemoteStore)
	assert.NotErrorIs(t, err, ErrNotFound)

	f.store.FailNext(store.OpSet, errUnavailable)
	err = f.users.CreateUserProfile(signedIn("u1"), models.UserProfile{UID: "u1"})
	assert.ErrorIs(t, err, ErrRemoteStore)
}
