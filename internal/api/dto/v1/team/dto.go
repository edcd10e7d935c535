package team

import "time"

// CreateTeamRequest represents the payload for creating a team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,teamname"`
}

// TeamMemberRequest names the user to add to a team
type TeamMemberRequest struct {
	UserUID string `json:"userUid" binding:"required,storekey"`
}

// CreateChannelRequest represents the payload for creating a channel in a team
type CreateChannelRequest struct {
	Name string `json:"name" binding:"required,min=1,max=40"`
}

// TeamResponse represents a team in API responses
type TeamResponse struct {
	UID      string   `json:"uid"`
	Name     string   `json:"name"`
	Owner    string   `json:"owner"`
	Members  []string `json:"members"`
	Channels []string `json:"channels"`
}

// MembersResponse lists the member uids of a team
type MembersResponse struct {
	TeamUID string   `json:"teamUid"`
	Members []string `json:"members"`
}

// NameExistsResponse reports whether a team name is taken
type NameExistsResponse struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// ChannelResponse represents a channel in API responses
type ChannelResponse struct {
	UID       string    `json:"uid"`
	TeamID    string    `json:"teamId"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}
