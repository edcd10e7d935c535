package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/api/dto/v1/team"
	"github.com/osa911/teamchat/internal/api/mapper"
	"github.com/osa911/teamchat/internal/api/sanitization"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/service"
	"github.com/osa911/teamchat/internal/utils"
)

type TeamHandler struct {
	teams *service.TeamService
	users *service.UserService
}

func NewTeamHandler(teams *service.TeamService, users *service.UserService) *TeamHandler {
	return &TeamHandler{teams: teams, users: users}
}

// CreateTeam creates a team owned by the signed in user. Names must be unique.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	req, ok := validated[team.CreateTeamRequest](c, constants.ContextKeyCreateTeam)
	if !ok {
		return
	}
	name := sanitization.SanitizeName(req.Name)

	exists, err := h.teams.CheckIfTeamNameExists(c.Request.Context(), name)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to check team name")
		return
	}
	if exists {
		utils.HandleAPIError(c, fmt.Errorf("%w: team %q already exists", service.ErrConflict, name),
			http.StatusConflict, common.ErrCodeConflict, "Team name is already taken")
		return
	}

	uid, err := h.teams.AddTeam(c.Request.Context(), identity.UID, name)
	if err != nil {
		logging.GetGlobalLogger().Error("CreateTeam: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to create team")
		return
	}

	created, err := h.teams.GetTeamByUID(c.Request.Context(), uid)
	if err != nil || created == nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to load team")
		return
	}
	utils.HandleCreated(c, resourcePath("teams", uid), mapper.TeamToResponse(created))
}

// ListTeams returns every team, or with ?members=a,b the teams any of them belongs to
func (h *TeamHandler) ListTeams(c *gin.Context) {
	var uids []string
	for _, uid := range strings.Split(c.Query("members"), ",") {
		if uid = strings.TrimSpace(uid); uid != "" {
			uids = append(uids, uid)
		}
	}

	teams, err := h.teams.GetTeamsByUserUIDs(c.Request.Context(), uids)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list teams")
		return
	}
	utils.HandleSuccess(c, mapper.TeamsToResponses(teams))
}

// TeamNameExists checks ?name= against every stored team
func (h *TeamHandler) TeamNameExists(c *gin.Context) {
	name := sanitization.SanitizeName(c.Query("name"))
	if name == "" {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation, "name is required", nil)
		return
	}

	exists, err := h.teams.CheckIfTeamNameExists(c.Request.Context(), name)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to check team name")
		return
	}
	utils.HandleSuccess(c, team.NameExistsResponse{Name: name, Exists: exists})
}

func (h *TeamHandler) GetTeam(c *gin.Context) {
	found, err := h.teams.GetTeamByUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to get team")
		return
	}
	if found == nil {
		utils.HandleError(c, http.StatusNotFound, common.ErrCodeNotFound, "Team not found", nil)
		return
	}
	utils.HandleSuccess(c, mapper.TeamToResponse(found))
}

func (h *TeamHandler) GetMembers(c *gin.Context) {
	teamUID := c.Param("id")
	members, err := h.teams.GetTeamMembers(c.Request.Context(), teamUID)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to get team members")
		return
	}
	utils.HandleSuccess(c, team.MembersResponse{TeamUID: teamUID, Members: members})
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	req, ok := validated[team.TeamMemberRequest](c, constants.ContextKeyTeamMember)
	if !ok {
		return
	}

	teamUID := c.Param("id")
	if err := h.users.AddTeamMember(c.Request.Context(), teamUID, req.UserUID); err != nil {
		logging.GetGlobalLogger().Error("AddMember: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to add team member")
		return
	}
	h.GetMembers(c)
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if err := h.users.RemoveChannelMember(c.Request.Context(), c.Param("id"), c.Param("uid")); err != nil {
		logging.GetGlobalLogger().Error("RemoveMember: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to remove team member")
		return
	}
	utils.HandleNoContent(c)
}

func (h *TeamHandler) CreateChannel(c *gin.Context) {
	req, ok := validated[team.CreateChannelRequest](c, constants.ContextKeyCreateChannel)
	if !ok {
		return
	}

	channel, err := h.teams.CreateChannel(c.Request.Context(), c.Param("id"), sanitization.SanitizeName(req.Name))
	if err != nil {
		logging.GetGlobalLogger().Error("CreateChannel: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to create channel")
		return
	}
	utils.HandleCreated(c, resourcePath("channels", channel.UID, "messages"), mapper.ChannelToResponse(channel))
}

func (h *TeamHandler) ListChannels(c *gin.Context) {
	channels, err := h.teams.ListChannels(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list channels")
		return
	}
	utils.HandleSuccess(c, mapper.ChannelsToResponses(channels))
}
