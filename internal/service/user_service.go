package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/session"
)

// now is the client clock used for createdOn stamps. Tests replace it.
var now = time.Now

// PictureStore uploads profile pictures and returns their public URL.
type PictureStore interface {
	Upload(ctx context.Context, uid, filename, contentType string, r io.Reader) (string, error)
}

type UserService struct {
	users    repository.UserRepository
	teams    repository.TeamRepository
	sessions session.Provider
	pictures PictureStore
	loc      *time.Location
	logger   *logging.Logger
}

// NewUserService wires the user operations. pictures may be nil, in which case
// profile picture uploads are rejected. loc is the zone used for formatted
// creation dates and defaults to UTC.
func NewUserService(users repository.UserRepository, teams repository.TeamRepository, sessions session.Provider, pictures PictureStore, loc *time.Location) *UserService {
	if loc == nil {
		loc = time.UTC
	}
	return &UserService{
		users:    users,
		teams:    teams,
		sessions: sessions,
		pictures: pictures,
		loc:      loc,
		logger:   logging.GetGlobalLogger(),
	}
}

// CreateUserProfile writes the signed in user's profile, replacing any stored one.
// Unset name, phone and picture fields are stored empty and createdOn defaults to now.
func (s *UserService) CreateUserProfile(ctx context.Context, data models.UserProfile) error {
	identity, ok := s.sessions.Current(ctx)
	if !ok {
		return fmt.Errorf("%w: cannot create a profile without a session", ErrAuth)
	}
	if data.UID == "" {
		return invalid("profile uid is required")
	}
	if data.UID != identity.UID {
		return invalid("profile uid %q does not match the signed in user", data.UID)
	}
	if err := requireKey("uid", data.UID); err != nil {
		return err
	}

	if data.CreatedOn == 0 {
		data.CreatedOn = now().UnixMilli()
	}

	if err := s.users.Create(ctx, data); err != nil {
		s.logger.Error("CreateUserProfile: failed to write profile for uid=%s: %v", data.UID, err)
		return fmt.Errorf("failed to create user profile: %w", storeError(err))
	}
	return nil
}

// GetUserProfileByUID returns nil without an error when no profile is stored.
func (s *UserService) GetUserProfileByUID(ctx context.Context, uid string) (*models.Profile, error) {
	if err := requireKey("uid", uid); err != nil {
		return nil, err
	}
	profile, err := s.users.Get(ctx, uid)
	if err != nil {
		s.logger.Error("GetUserProfileByUID: failed for uid=%s: %v", uid, err)
		return nil, fmt.Errorf("failed to get user profile: %w", storeError(err))
	}
	return profile, nil
}

func (s *UserService) GetUserProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	if username == "" {
		return nil, invalid("username is required")
	}
	profile, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("GetUserProfileByUsername: failed for username=%q: %v", username, err)
		}
		return nil, fmt.Errorf("failed to get user profile by username: %w", storeError(err))
	}
	return profile, nil
}

// FetchUsersWithPagination returns page (1 based) of the directory in store key
// order. Every call reads all earlier pages too.
func (s *UserService) FetchUsersWithPagination(ctx context.Context, page, perPage int) ([]*models.Profile, error) {
	if page < 1 || perPage < 1 {
		return nil, invalid("page and perPage must be positive, got %d and %d", page, perPage)
	}
	start, end := (page-1)*perPage, page*perPage

	profiles, err := s.users.ListFirst(ctx, end)
	if err != nil {
		s.logger.Error("FetchUsersWithPagination: failed for page=%d perPage=%d: %v", page, perPage, err)
		return nil, fmt.Errorf("failed to fetch users: %w", storeError(err))
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: no users stored", ErrNotFound)
	}

	if start >= len(profiles) {
		return []*models.Profile{}, nil
	}
	if end > len(profiles) {
		end = len(profiles)
	}
	return s.withFormattedDates(profiles[start:end]), nil
}

// UpdateUserProfile merges the set fields into the stored profile and returns
// the profile as read back afterwards.
func (s *UserService) UpdateUserProfile(ctx context.Context, uid string, update models.ProfileUpdate) (*models.Profile, error) {
	if err := requireKey("uid", uid); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, uid, update.Fields()); err != nil {
		s.logger.Error("UpdateUserProfile: failed to update uid=%s: %v", uid, err)
		return nil, fmt.Errorf("failed to update user profile: %w", storeError(err))
	}

	profile, err := s.users.Get(ctx, uid)
	if err != nil {
		s.logger.Error("UpdateUserProfile: failed to read back uid=%s: %v", uid, err)
		return nil, fmt.Errorf("failed to read updated profile: %w", storeError(err))
	}
	return profile, nil
}

// CheckIfUsernameExists reports whether users/{username} exists. Profiles are
// keyed by uid, so this only finds a username that equals a stored uid.
func (s *UserService) CheckIfUsernameExists(ctx context.Context, username string) (bool, error) {
	if err := requireKey("username", username); err != nil {
		return false, err
	}
	exists, err := s.users.KeyExists(ctx, username)
	if err != nil {
		s.logger.Error("CheckIfUsernameExists: failed for username=%q: %v", username, err)
		return false, fmt.Errorf("failed to check username: %w", storeError(err))
	}
	return exists, nil
}

func (s *UserService) AddTeamMember(ctx context.Context, teamUID, userUID string) error {
	if err := s.requireMembership(ctx, teamUID, userUID); err != nil {
		return err
	}
	if err := s.teams.AddMember(ctx, teamUID, userUID); err != nil {
		s.logger.Error("AddTeamMember: failed to add uid=%s to team=%s: %v", userUID, teamUID, err)
		return fmt.Errorf("failed to add team member: %w", storeError(err))
	}
	s.logger.Info("Team %s member %s added", teamUID, userUID)
	return nil
}

func (s *UserService) RemoveChannelMember(ctx context.Context, teamUID, userUID string) error {
	if err := s.requireMembership(ctx, teamUID, userUID); err != nil {
		return err
	}
	if err := s.teams.RemoveMember(ctx, teamUID, userUID); err != nil {
		s.logger.Error("RemoveChannelMember: failed to remove uid=%s from team=%s: %v", userUID, teamUID, err)
		return fmt.Errorf("failed to remove team member: %w", storeError(err))
	}
	s.logger.Info("Team %s member %s removed", teamUID, userUID)
	return nil
}

// requireMembership validates a member change and checks the team exists.
func (s *UserService) requireMembership(ctx context.Context, teamUID, userUID string) error {
	if err := requireKey("team uid", teamUID); err != nil {
		return err
	}
	if err := requireKey("user uid", userUID); err != nil {
		return err
	}
	team, err := s.teams.Get(ctx, teamUID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", storeError(err))
	}
	if team == nil {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamUID)
	}
	return nil
}

// SearchUsers returns every profile whose username contains search, ignoring case.
// It reads the whole users collection.
func (s *UserService) SearchUsers(ctx context.Context, search string) ([]*models.Profile, error) {
	profiles, err := s.GetAllUserProfiles(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(search)
	matches := make([]*models.Profile, 0)
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.Username), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// GetAllUserProfiles returns the whole directory with formatted creation dates.
func (s *UserService) GetAllUserProfiles(ctx context.Context) ([]*models.Profile, error) {
	profiles, err := s.users.List(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("GetAllUserProfiles: failed to read users: %v", err)
		}
		return nil, fmt.Errorf("failed to fetch users: %w", storeError(err))
	}
	return s.withFormattedDates(profiles), nil
}

func (s *UserService) FetchTotalUserCount(ctx context.Context) (int, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		s.logger.Error("FetchTotalUserCount: %v", err)
		return 0, fmt.Errorf("failed to count users: %w", storeError(err))
	}
	return count, nil
}

// UpdateUserProfilePicture uploads a picture for the signed in user and points
// their profile at it. It returns the picture URL.
func (s *UserService) UpdateUserProfilePicture(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	identity, ok := s.sessions.Current(ctx)
	if !ok {
		return "", fmt.Errorf("%w: cannot change a profile picture without a session", ErrAuth)
	}
	if s.pictures == nil {
		return "", fmt.Errorf("%w: picture uploads are not configured", ErrValidation)
	}

	url, err := s.pictures.Upload(ctx, identity.UID, filename, contentType, r)
	if err != nil {
		s.logger.Error("UpdateUserProfilePicture: upload failed for uid=%s: %v", identity.UID, err)
		return "", fmt.Errorf("failed to upload profile picture: %w", storeError(err))
	}
	if err := s.users.SetProfilePicture(ctx, identity.UID, url); err != nil {
		s.logger.Error("UpdateUserProfilePicture: failed to store url for uid=%s: %v", identity.UID, err)
		return "", fmt.Errorf("failed to save profile picture: %w", storeError(err))
	}
	return url, nil
}

func (s *UserService) withFormattedDates(profiles []*models.Profile) []*models.Profile {
	for _, p := range profiles {
		p.CreatedOnFormatted = models.FormatCreatedOn(p.CreatedOn, s.loc)
	}
	return profiles
}
