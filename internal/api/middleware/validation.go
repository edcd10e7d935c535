package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/api/dto/v1/message"
	"github.com/osa911/teamchat/internal/api/dto/v1/team"
	"github.com/osa911/teamchat/internal/api/dto/v1/user"
	"github.com/osa911/teamchat/internal/api/validation"
	"github.com/osa911/teamchat/internal/utils"
)

// ValidationMiddleware binds and validates request bodies before the handler runs
type ValidationMiddleware struct{}

// NewValidationMiddleware registers the custom validators on gin's binding engine
func NewValidationMiddleware() (*ValidationMiddleware, error) {
	if err := validation.Setup(); err != nil {
		return nil, err
	}
	return &ValidationMiddleware{}, nil
}

// bindJSON stores the validated *T under key
func bindJSON[T any](key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := new(T)
		if err := c.ShouldBindJSON(req); err != nil {
			details := validation.FormatValidationError(err)
			if len(details) == 0 {
				details = []validation.ValidationError{{Field: "body", Tag: "json", Message: "request body is not valid JSON"}}
			}
			utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation, "Invalid request body", details)
			return
		}

		c.Set(key, req)
		c.Next()
	}
}

// ValidateCreateProfileRequest validates profile creation
func (m *ValidationMiddleware) ValidateCreateProfileRequest() gin.HandlerFunc {
	return bindJSON[user.CreateProfileRequest](constants.ContextKeyCreateProfile)
}

// ValidateUpdateProfileRequest validates profile update request
func (m *ValidationMiddleware) ValidateUpdateProfileRequest() gin.HandlerFunc {
	return bindJSON[user.UpdateProfileRequest](constants.ContextKeyUpdateProfile)
}

func (m *ValidationMiddleware) ValidateCreateTeamRequest() gin.HandlerFunc {
	return bindJSON[team.CreateTeamRequest](constants.ContextKeyCreateTeam)
}

func (m *ValidationMiddleware) ValidateTeamMemberRequest() gin.HandlerFunc {
	return bindJSON[team.TeamMemberRequest](constants.ContextKeyTeamMember)
}

func (m *ValidationMiddleware) ValidateCreateChannelRequest() gin.HandlerFunc {
	return bindJSON[team.CreateChannelRequest](constants.ContextKeyCreateChannel)
}

func (m *ValidationMiddleware) ValidateSendMessageRequest() gin.HandlerFunc {
	return bindJSON[message.SendMessageRequest](constants.ContextKeyChannelMessage)
}

func (m *ValidationMiddleware) ValidateCreatePrivateMessageRequest() gin.HandlerFunc {
	return bindJSON[message.CreatePrivateMessageRequest](constants.ContextKeyPrivateMessage)
}
