package user

// CreateProfileRequest represents the payload for creating the signed in user's profile.
// UID defaults to the session uid.
type CreateProfileRequest struct {
	UID               string `json:"uid" binding:"omitempty,storekey"`
	Username          string `json:"username" binding:"required,username"`
	FirstName         string `json:"firstName" binding:"omitempty,name"`
	LastName          string `json:"lastName" binding:"omitempty,name"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone" binding:"omitempty,max=32"`
	ProfilePictureURL string `json:"profilePictureURL" binding:"omitempty,url"`
}

// UpdateProfileRequest represents the payload for updating a profile. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Username          *string `json:"username" binding:"omitempty,username"`
	FirstName         *string `json:"firstName" binding:"omitempty,name"`
	LastName          *string `json:"lastName" binding:"omitempty,name"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone" binding:"omitempty,max=32"`
	ProfilePictureURL *string `json:"profilePictureURL" binding:"omitempty,url"`
}

// ProfileResponse represents a user profile in API responses
type ProfileResponse struct {
	ID                 string            `json:"id"`
	UID                string            `json:"uid"`
	Username           string            `json:"username"`
	DisplayName        string            `json:"displayName"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	ProfilePictureURL  string            `json:"profilePictureURL"`
	CreatedOn          int64             `json:"createdOn"`
	CreatedOnFormatted string            `json:"createdOnFormatted,omitempty"`
	UpdatedOn          int64             `json:"updatedOn,omitempty"`
	Teams              map[string]string `json:"myTeams,omitempty"`
}

// ListUsersResponse is one page of the user directory
type ListUsersResponse struct {
	Users   []ProfileResponse `json:"users"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
	Total   int               `json:"total"`
}

// UsernameExistsResponse reports whether a username is taken
type UsernameExistsResponse struct {
	Username string `json:"username"`
	Exists   bool   `json:"exists"`
}

// ProfilePictureResponse carries the download URL of an uploaded picture
type ProfilePictureResponse struct {
	URL string `json:"url"`
}
