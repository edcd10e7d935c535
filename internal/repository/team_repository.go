package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/store"
)

type teamRepository struct {
	store store.Store
	mode  models.MembershipMode
}

// NewTeamRepository creates a new team repository instance
func NewTeamRepository(s store.Store, mode models.MembershipMode) TeamRepository {
	if mode == "" {
		mode = models.MembershipTransaction
	}
	return &teamRepository{store: s, mode: mode}
}

func teamPath(uid string, rest ...string) string {
	return store.Join(append([]string{teamsPath, uid}, rest...)...)
}

// Create reserves a key, then writes the team and the owner's MyTeams entry in one
// multi-path update. If that update fails the reserved key is removed again.
func (r *teamRepository) Create(ctx context.Context, owner, name string) (string, error) {
	uid, err := r.store.Push(ctx, teamsPath, "")
	if err != nil {
		return "", fmt.Errorf("failed to reserve team key: %w", err)
	}

	team := models.Team{
		UID:     uid,
		Name:    name,
		Owner:   owner,
		Members: map[string]bool{owner: true},
	}
	updates := map[string]interface{}{}
	updates[teamPath(uid)] = team
	updates[store.Join(usersPath, owner, "MyTeams", name)] = uid

	if err := r.store.Update(ctx, "", updates); err != nil {
		if delErr := r.store.Delete(ctx, teamPath(uid)); delErr != nil {
			return "", fmt.Errorf("failed to write team %s: %w (cleanup also failed: %v)", uid, err, delErr)
		}
		return "", fmt.Errorf("failed to write team %s: %w", uid, err)
	}
	return uid, nil
}

func (r *teamRepository) Get(ctx context.Context, uid string) (*models.Team, error) {
	snap, err := r.store.Get(ctx, teamPath(uid))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, nil
	}
	return decodeTeam(snap)
}

func (r *teamRepository) List(ctx context.Context) ([]*models.Team, error) {
	snap, err := r.store.Get(ctx, teamsPath)
	if err != nil {
		return nil, err
	}

	teams := make([]*models.Team, 0)
	var decodeErr error
	snap.ForEach(func(child store.Snapshot) bool {
		if !child.HasChildren() {
			// A key reserved by an unfinished Create.
			return true
		}
		team, err := decodeTeam(child)
		if err != nil {
			decodeErr = err
			return false
		}
		teams = append(teams, team)
		return true
	})
	return teams, decodeErr
}

// PurgeReservations deletes keys reserved by a Create that never completed and
// whose key was generated before cutoff. A key that has meanwhile become a team is
// left alone.
func (r *teamRepository) PurgeReservations(ctx context.Context, cutoff time.Time) ([]string, error) {
	snap, err := r.store.Get(ctx, teamsPath)
	if err != nil {
		return nil, err
	}

	var stale []string
	snap.ForEach(func(child store.Snapshot) bool {
		if child.HasChildren() {
			return true
		}
		if created, ok := store.KeyTime(child.Key); ok && created.Before(cutoff) {
			stale = append(stale, child.Key)
		}
		return true
	})

	purged := make([]string, 0, len(stale))
	for _, uid := range stale {
		err := r.store.Transaction(ctx, teamPath(uid), func(current store.Snapshot) (interface{}, error) {
			if current.HasChildren() {
				return nil, store.ErrAborted
			}
			return nil, nil
		})
		if errors.Is(err, store.ErrAborted) {
			continue
		}
		if err != nil {
			return purged, fmt.Errorf("failed to release team key %s: %w", uid, err)
		}
		purged = append(purged, uid)
	}
	return purged, nil
}

func (r *teamRepository) Members(ctx context.Context, teamUID string) ([]string, error) {
	snap, err := r.store.Get(ctx, teamPath(teamUID, "members"))
	if err != nil {
		return nil, err
	}

	members := make([]string, 0)
	snap.ForEach(func(child store.Snapshot) bool {
		if child.IsTrue() {
			members = append(members, child.Key)
		}
		return true
	})
	return members, nil
}

func (r *teamRepository) AddMember(ctx context.Context, teamUID, userUID string) error {
	return r.changeMembers(ctx, teamUID, func(members map[string]interface{}) {
		members[userUID] = true
	})
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamUID, userUID string) error {
	return r.changeMembers(ctx, teamUID, func(members map[string]interface{}) {
		delete(members, userUID)
	})
}

func (r *teamRepository) changeMembers(ctx context.Context, teamUID string, edit func(map[string]interface{})) error {
	path := teamPath(teamUID, "members")

	if r.mode == models.MembershipRewrite {
		snap, err := r.store.Get(ctx, path)
		if err != nil {
			return err
		}
		members := map[string]interface{}{}
		if err := snap.Unmarshal(&members); err != nil {
			return err
		}
		edit(members)
		return r.store.Set(ctx, path, members)
	}

	return r.store.Transaction(ctx, path, func(current store.Snapshot) (interface{}, error) {
		members := map[string]interface{}{}
		if err := current.Unmarshal(&members); err != nil {
			return nil, err
		}
		edit(members)
		return members, nil
	})
}

func decodeTeam(snap store.Snapshot) (*models.Team, error) {
	var team models.Team
	if err := snap.Unmarshal(&team); err != nil {
		return nil, fmt.Errorf("failed to decode team %s: %w", snap.Key, err)
	}
	if team.UID == "" {
		team.UID = snap.Key
	}
	return &team, nil
}
