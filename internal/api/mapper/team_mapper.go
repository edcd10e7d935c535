package mapper

import (
	"sort"
	"time"

	"github.com/osa911/teamchat/internal/api/dto/v1/team"
	"github.com/osa911/teamchat/internal/models"
)

// TeamToResponse converts a domain Team to a TeamResponse DTO
func TeamToResponse(t *models.Team) *team.TeamResponse {
	if t == nil {
		return nil
	}

	return &team.TeamResponse{
		UID:      t.UID,
		Name:     t.Name,
		Owner:    t.Owner,
		Members:  flagged(t.Members),
		Channels: flagged(t.Channels),
	}
}

// TeamsToResponses converts a slice of domain Teams to TeamResponse DTOs
func TeamsToResponses(teams []*models.Team) []team.TeamResponse {
	result := make([]team.TeamResponse, 0, len(teams))
	for _, t := range teams {
		if t == nil {
			continue
		}
		result = append(result, *TeamToResponse(t))
	}
	return result
}

// ChannelToResponse converts a domain Channel to a ChannelResponse DTO
func ChannelToResponse(c *models.Channel) *team.ChannelResponse {
	if c == nil {
		return nil
	}

	return &team.ChannelResponse{
		UID:       c.UID,
		TeamID:    c.TeamID,
		Name:      c.Name,
		Owner:     c.Owner,
		Members:   flagged(c.Members),
		CreatedAt: time.UnixMilli(c.CreatedOn).UTC(),
	}
}

// ChannelsToResponses converts a slice of domain Channels to ChannelResponse DTOs
func ChannelsToResponses(channels []*models.Channel) []team.ChannelResponse {
	result := make([]team.ChannelResponse, 0, len(channels))
	for _, c := range channels {
		if c == nil {
			continue
		}
		result = append(result, *ChannelToResponse(c))
	}
	return result
}

// flagged returns the sorted keys set to true
func flagged(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
