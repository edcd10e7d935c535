package repository

import (
	"context"
	"fmt"

	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/store"
)

// userRepository implements UserRepository interface
type userRepository struct {
	store store.Store
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{
		store: s,
	}
}

func userPath(uid string) string {
	return store.Join(usersPath, uid)
}

func (r *userRepository) Create(ctx context.Context, profile models.UserProfile) error {
	return r.store.Set(ctx, userPath(profile.UID), profile)
}

func (r *userRepository) Get(ctx context.Context, uid string) (*models.Profile, error) {
	snap, err := r.store.Get(ctx, userPath(uid))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, nil
	}
	return decodeProfile(snap)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	matches, err := r.store.Children(ctx, store.Query{
		Path:         usersPath,
		OrderByChild: "username",
		EqualTo:      username,
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no user named %q", ErrNotFound, username)
	}
	// Usernames are not unique at write time; the first match in key order wins.
	return decodeProfile(matches[0])
}

func (r *userRepository) ListFirst(ctx context.Context, n int) ([]*models.Profile, error) {
	snaps, err := r.store.Children(ctx, store.Query{Path: usersPath, LimitToFirst: n})
	if err != nil {
		return nil, err
	}
	profiles := make([]*models.Profile, 0, len(snaps))
	for _, snap := range snaps {
		p, err := decodeProfile(snap)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.Profile, error) {
	snap, err := r.store.Get(ctx, usersPath)
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, fmt.Errorf("%w: users collection is empty", ErrNotFound)
	}

	profiles := make([]*models.Profile, 0)
	var decodeErr error
	snap.ForEach(func(child store.Snapshot) bool {
		p, err := decodeProfile(child)
		if err != nil {
			decodeErr = err
			return false
		}
		profiles = append(profiles, p)
		return true
	})
	return profiles, decodeErr
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	snap, err := r.store.Get(ctx, usersPath)
	if err != nil {
		return 0, err
	}
	return len(snap.Keys()), nil
}

func (r *userRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	values := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["updatedOn"] = store.ServerTimestamp
	return r.store.Update(ctx, userPath(uid), values)
}

func (r *userRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	snap, err := r.store.Get(ctx, userPath(key))
	if err != nil {
		return false, err
	}
	return snap.Exists(), nil
}

func (r *userRepository) SetProfilePicture(ctx context.Context, uid, url string) error {
	return r.store.Update(ctx, "", map[string]interface{}{
		store.Join(usersPath, uid, "profilePictureURL"): url,
	})
}

func (r *userRepository) Ping(ctx context.Context) error {
	_, err := r.store.Children(ctx, store.Query{Path: usersPath, LimitToFirst: 1})
	return err
}

func decodeProfile(snap store.Snapshot) (*models.Profile, error) {
	var u models.UserProfile
	if err := snap.Unmarshal(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Key, err)
	}
	return models.NewProfile(snap.Key, u), nil
}
