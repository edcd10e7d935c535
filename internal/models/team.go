package models

// Team is stored at teams/{uid}.
type Team struct {
	UID      string          `json:"uid"`
	Name     string          `json:"name"`
	Owner    string          `json:"owner"`
	Members  map[string]bool `json:"members,omitempty"`
	Channels map[string]bool `json:"channels,omitempty"`
}

// Channel is stored at channels/{uid} and listed under teams/{teamId}/channels.
type Channel struct {
	UID       string          `json:"uid"`
	TeamID    string          `json:"teamId"`
	Name      string          `json:"name"`
	Owner     string          `json:"owner"`
	Members   map[string]bool `json:"members,omitempty"`
	CreatedOn int64           `json:"createdOn"`
}

// MembershipMode selects how member maps are changed.
type MembershipMode string

const (
	// MembershipTransaction changes one member key inside a store transaction.
	MembershipTransaction MembershipMode = "transaction"
	// MembershipRewrite reads the whole map, edits it locally and writes it back.
	// Concurrent writers can lose each other's changes.
	MembershipRewrite MembershipMode = "rewrite"
)
