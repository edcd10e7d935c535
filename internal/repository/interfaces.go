package repository

import (
	"context"
	"errors"
	"time"

	"github.com/osa911/teamchat/internal/models"
)

// ErrNotFound is returned when a lookup matches no stored record.
var ErrNotFound = errors.New("record not found")

// Store paths.
const (
	usersPath           = "users"
	teamsPath           = "teams"
	channelsPath        = "channels"
	channelMessagesPath = "channelMessages"
	privateMessagePath  = "privateMessage"
)

// UserRepository defines the store operations on users/{uid}
type UserRepository interface {
	// Create overwrites the whole profile at users/{uid}
	Create(ctx context.Context, profile models.UserProfile) error
	// Get returns the profile stored under uid, or nil when there is none
	Get(ctx context.Context, uid string) (*models.Profile, error)
	// GetByUsername returns the first profile whose username field equals username
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	// ListFirst returns the first n profiles in key order
	ListFirst(ctx context.Context, n int) ([]*models.Profile, error)
	// List returns every profile
	List(ctx context.Context) ([]*models.Profile, error)
	// Count returns the number of stored profiles
	Count(ctx context.Context) (int, error)
	// Update merges fields into the profile and stamps updatedOn on the server
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
	// KeyExists reports whether a child literally named key exists under users
	KeyExists(ctx context.Context, key string) (bool, error)
	// SetProfilePicture points the profile at a new picture URL
	SetProfilePicture(ctx context.Context, uid, url string) error
	// Ping reads at most one child of users to check the store answers
	Ping(ctx context.Context) error
}

// TeamRepository defines the store operations on teams/{uid}
type TeamRepository interface {
	// Create stores a new team owned by owner and indexes it under the owner's MyTeams
	Create(ctx context.Context, owner, name string) (string, error)
	// Get returns the team, or nil when there is none
	Get(ctx context.Context, uid string) (*models.Team, error)
	// List returns every team
	List(ctx context.Context) ([]*models.Team, error)
	// PurgeReservations removes team keys left reserved by an unfinished Create
	PurgeReservations(ctx context.Context, cutoff time.Time) ([]string, error)
	// Members returns the member uids flagged true
	Members(ctx context.Context, teamUID string) ([]string, error)
	// AddMember flags userUID as a member
	AddMember(ctx context.Context, teamUID, userUID string) error
	// RemoveMember drops userUID from the members map
	RemoveMember(ctx context.Context, teamUID, userUID string) error
}

// ChannelRepository defines the store operations on channels/{uid}
type ChannelRepository interface {
	// Create stores the channel and flags it under teams/{teamId}/channels
	Create(ctx context.Context, channel models.Channel) (string, error)
	Get(ctx context.Context, uid string) (*models.Channel, error)
	ListByTeam(ctx context.Context, teamUID string) ([]*models.Channel, error)
}

// MessageRepository defines the store operations on channelMessages/{channelId}
type MessageRepository interface {
	Append(ctx context.Context, channelID string, message models.ChannelMessage) (string, error)
	List(ctx context.Context, channelID string) ([]*models.ChannelMessageEntry, error)
}

// PrivateMessageRepository defines the store operations on privateMessage/{messageId}
type PrivateMessageRepository interface {
	Put(ctx context.Context, messageID string, data models.Record) error
	Get(ctx context.Context, messageID string) (models.Record, error)
}
