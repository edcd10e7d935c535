package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/store"
)

func TestReservationCleanup_Cleanup(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	teams := repository.NewTeamRepository(mem, models.MembershipTransaction)

	uid, err := teams.Create(ctx, "owner", "gophers")
	require.NoError(t, err)
	reserved, err := mem.Push(ctx, "teams", "")
	require.NoError(t, err)

	rc := NewReservationCleanup(teams, time.Hour, 10*time.Minute)

	n, err := rc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "reservations inside the grace period are kept")

	rc.now = func() time.Time { return time.Now().Add(time.Hour) }
	n, err = rc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	snap, err := mem.Get(ctx, "teams/"+reserved)
	require.NoError(t, err)
	assert.False(t, snap.Exists())

	team, err := teams.Get(ctx, uid)
	require.NoError(t, err)
	assert.NotNil(t, team)
}

func TestReservationCleanup_CleanupError(t *testing.T) {
	mem := store.NewMemoryStore()
	boom := errors.New("unavailable")
	mem.FailNext(store.OpGet, boom)

	rc := NewReservationCleanup(repository.NewTeamRepository(mem, ""), time.Hour, 0)
	_, err := rc.Cleanup(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestReservationCleanup_StartStop(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	teams := repository.NewTeamRepository(mem, "")
	reserved, err := mem.Push(ctx, "teams", "")
	require.NoError(t, err)

	rc := NewReservationCleanup(teams, time.Hour, -time.Hour)
	rc.Start()

	assert.Eventually(t, func() bool {
		snap, err := mem.Get(ctx, "teams/"+reserved)
		return err == nil && !snap.Exists()
	}, 2*time.Second, 10*time.Millisecond, "the first sweep runs on start")

	rc.Stop()
}
