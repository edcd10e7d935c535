package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/handlers"
	"github.com/osa911/teamchat/internal/api/middleware"
)

// SetupTeamRoutes configures team, membership and channel routes
func SetupTeamRoutes(rg *gin.RouterGroup, team *handlers.TeamHandler, validation *middleware.ValidationMiddleware) {
	rg.GET("/team-names", team.TeamNameExists)

	teams := rg.Group("/teams")
	{
		teams.GET("", team.ListTeams)
		teams.POST("", validation.ValidateCreateTeamRequest(), team.CreateTeam)
		teams.GET("/:id", team.GetTeam)
		teams.GET("/:id/members", team.GetMembers)
		teams.POST("/:id/members", validation.ValidateTeamMemberRequest(), team.AddMember)
		teams.DELETE("/:id/members/:uid", team.RemoveMember)
		teams.GET("/:id/channels", team.ListChannels)
		teams.POST("/:id/channels", validation.ValidateCreateChannelRequest(), team.CreateChannel)
	}
}
