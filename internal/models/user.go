package models

import (
	"fmt"
	"time"
)

// UserProfile is stored at users/{uid}.
type UserProfile struct {
	UID               string            `json:"uid"`
	Username          string            `json:"username"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	ProfilePictureURL string            `json:"profilePictureURL"`
	CreatedOn         int64             `json:"createdOn"`
	UpdatedOn         int64             `json:"updatedOn,omitempty"`
	MyTeams           map[string]string `json:"MyTeams,omitempty"`
}

// DisplayName is "First Last", or the username when either part is missing.
func (u UserProfile) DisplayName() string {
	if u.FirstName == "" || u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// Profile is a UserProfile as returned to callers, with the derived fields filled in.
type Profile struct {
	UserProfile
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	// CreatedOnFormatted is only set on directory listings.
	CreatedOnFormatted string `json:"createdOnFormatted,omitempty"`
}

// NewProfile shapes a stored profile read from key.
func NewProfile(key string, u UserProfile) *Profile {
	u.UID = key
	return &Profile{
		UserProfile: u,
		ID:          key,
		DisplayName: u.DisplayName(),
	}
}

// ProfileUpdate holds the fields to merge into a stored profile. Nil fields are left alone.
type ProfileUpdate struct {
	Username          *string `json:"username,omitempty"`
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	ProfilePictureURL *string `json:"profilePictureURL,omitempty"`
}

// Fields returns the set fields keyed by their stored name.
func (p ProfileUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
		}
	}
	set("username", p.Username)
	set("firstName", p.FirstName)
	set("lastName", p.LastName)
	set("email", p.Email)
	set("phone", p.Phone)
	set("profilePictureURL", p.ProfilePictureURL)
	return fields
}

// FormatCreatedOn renders a millisecond timestamp like "Mar 4th 2024, 1:02:03 PM".
// A zero timestamp renders as "".
func FormatCreatedOn(ms int64, loc *time.Location) string {
	if ms == 0 {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	t := time.UnixMilli(ms).In(loc)
	return fmt.Sprintf("%s %d%s %d, %s", t.Format("Jan"), t.Day(), ordinal(t.Day()), t.Year(), t.Format("3:04:05 PM"))
}

func ordinal(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
