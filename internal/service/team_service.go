package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/session"
)

type TeamService struct {
	teams    repository.TeamRepository
	channels repository.ChannelRepository
	sessions session.Provider
	logger   *logging.Logger
}

func NewTeamService(teams repository.TeamRepository, channels repository.ChannelRepository, sessions session.Provider) *TeamService {
	return &TeamService{
		teams:    teams,
		channels: channels,
		sessions: sessions,
		logger:   logging.GetGlobalLogger(),
	}
}

// AddTeam creates a team owned by ownerUID and returns its generated uid.
// The team record and the owner's MyTeams entry are written together.
func (s *TeamService) AddTeam(ctx context.Context, ownerUID, name string) (string, error) {
	if err := requireKey("owner uid", ownerUID); err != nil {
		return "", err
	}
	if err := requireKey("team name", name); err != nil {
		return "", err
	}

	uid, err := s.teams.Create(ctx, ownerUID, name)
	if err != nil {
		s.logger.Error("AddTeam: failed to create team %q for owner=%s: %v", name, ownerUID, err)
		return "", fmt.Errorf("failed to add team: %w", storeError(err))
	}
	s.logger.Info("Team %s (%s) created by %s", uid, name, ownerUID)
	return uid, nil
}

// CheckIfTeamNameExists scans every team for an exact name match.
func (s *TeamService) CheckIfTeamNameExists(ctx context.Context, name string) (bool, error) {
	teams, err := s.GetAllTeams(ctx)
	if err != nil {
		return false, err
	}
	for _, team := range teams {
		if team.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// GetTeamsByUserUIDs returns the teams that list any of uids as a member.
// An empty uids returns every team.
func (s *TeamService) GetTeamsByUserUIDs(ctx context.Context, uids []string) ([]*models.Team, error) {
	teams, err := s.GetAllTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return teams, nil
	}

	matches := make([]*models.Team, 0, len(teams))
	for _, team := range teams {
		for _, uid := range uids {
			if team.Members[uid] {
				matches = append(matches, team)
				break
			}
		}
	}
	return matches, nil
}

func (s *TeamService) GetAllTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		s.logger.Error("GetAllTeams: %v", err)
		return nil, fmt.Errorf("failed to fetch teams: %w", storeError(err))
	}
	return teams, nil
}

// GetTeamByUID returns nil without an error when the team does not exist.
func (s *TeamService) GetTeamByUID(ctx context.Context, uid string) (*models.Team, error) {
	if err := requireKey("team uid", uid); err != nil {
		return nil, err
	}
	team, err := s.teams.Get(ctx, uid)
	if err != nil {
		s.logger.Error("GetTeamByUID: failed for uid=%s: %v", uid, err)
		return nil, fmt.Errorf("failed to fetch team: %w", storeError(err))
	}
	return team, nil
}

// GetTeamMembers returns the uids whose member flag is exactly true.
func (s *TeamService) GetTeamMembers(ctx context.Context, teamUID string) ([]string, error) {
	if err := requireKey("team uid", teamUID); err != nil {
		return nil, err
	}
	members, err := s.teams.Members(ctx, teamUID)
	if err != nil {
		s.logger.Error("GetTeamMembers: failed for team=%s: %v", teamUID, err)
		return nil, fmt.Errorf("failed to fetch team members: %w", storeError(err))
	}
	return members, nil
}

// CreateChannel opens a channel in an existing team. The signed in user owns it
// and is its first member.
func (s *TeamService) CreateChannel(ctx context.Context, teamUID, name string) (*models.Channel, error) {
	identity, ok := s.sessions.Current(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: cannot create a channel without a session", ErrAuth)
	}
	if err := requireKey("team uid", teamUID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("channel name is required")
	}

	team, err := s.GetTeamByUID(ctx, teamUID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("%w: team %s", ErrNotFound, teamUID)
	}

	channel := models.Channel{
		TeamID:    teamUID,
		Name:      name,
		Owner:     identity.UID,
		Members:   map[string]bool{identity.UID: true},
		CreatedOn: now().UnixMilli(),
	}
	uid, err := s.channels.Create(ctx, channel)
	if err != nil {
		s.logger.Error("CreateChannel: failed to create %q in team=%s: %v", name, teamUID, err)
		return nil, fmt.Errorf("failed to create channel: %w", storeError(err))
	}
	channel.UID = uid
	return &channel, nil
}

func (s *TeamService) ListChannels(ctx context.Context, teamUID string) ([]*models.Channel, error) {
	if err := requireKey("team uid", teamUID); err != nil {
		return nil, err
	}
	channels, err := s.channels.ListByTeam(ctx, teamUID)
	if err != nil {
		s.logger.Error("ListChannels: failed for team=%s: %v", teamUID, err)
		return nil, fmt.Errorf("failed to list channels: %w", storeError(err))
	}
	return channels, nil
}
