package mapper

import (
	"github.com/osa911/teamchat/internal/api/dto/v1/user"
	"github.com/osa911/teamchat/internal/api/sanitization"
	"github.com/osa911/teamchat/internal/models"
)

// ProfileToResponse converts a domain Profile to a ProfileResponse DTO
func ProfileToResponse(p *models.Profile) *user.ProfileResponse {
	if p == nil {
		return nil
	}

	return &user.ProfileResponse{
		ID:                 p.ID,
		UID:                p.UID,
		Username:           p.Username,
		DisplayName:        p.DisplayName,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Email:              p.Email,
		Phone:              p.Phone,
		ProfilePictureURL:  p.ProfilePictureURL,
		CreatedOn:          p.CreatedOn,
		CreatedOnFormatted: p.CreatedOnFormatted,
		UpdatedOn:          p.UpdatedOn,
		Teams:              p.MyTeams,
	}
}

// ProfilesToResponses converts a slice of domain Profiles to ProfileResponse DTOs
func ProfilesToResponses(profiles []*models.Profile) []user.ProfileResponse {
	result := make([]user.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		if p == nil {
			continue
		}
		result = append(result, *ProfileToResponse(p))
	}
	return result
}

// CreateProfileRequestToModel builds the profile to store. Free-text fields are sanitized.
func CreateProfileRequestToModel(req *user.CreateProfileRequest) models.UserProfile {
	return models.UserProfile{
		UID:               req.UID,
		Username:          req.Username,
		FirstName:         sanitization.SanitizeName(req.FirstName),
		LastName:          sanitization.SanitizeName(req.LastName),
		Email:             sanitization.SanitizeEmail(req.Email),
		Phone:             sanitization.SanitizeString(req.Phone),
		ProfilePictureURL: req.ProfilePictureURL,
	}
}

// UpdateProfileRequestToModel converts the request into a partial update
func UpdateProfileRequestToModel(req *user.UpdateProfileRequest) models.ProfileUpdate {
	return models.ProfileUpdate{
		Username:          req.Username,
		FirstName:         sanitized(req.FirstName, sanitization.SanitizeName),
		LastName:          sanitized(req.LastName, sanitization.SanitizeName),
		Email:             sanitized(req.Email, sanitization.SanitizeEmail),
		Phone:             sanitized(req.Phone, sanitization.SanitizeString),
		ProfilePictureURL: req.ProfilePictureURL,
	}
}

func sanitized(v *string, fn func(string) string) *string {
	if v == nil {
		return nil
	}
	s := fn(*v)
	return &s
}
