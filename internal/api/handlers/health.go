package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/utils"
	"github.com/osa911/teamchat/internal/version"
)

type HealthHandler struct {
	users repository.UserRepository
}

func NewHealthHandler(users repository.UserRepository) *HealthHandler {
	return &HealthHandler{users: users}
}

// Check proves the store is reachable
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.users.Ping(c.Request.Context()); err != nil {
		utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeInternalServer, "Store connection error")
		return
	}

	utils.HandleSuccess(c, gin.H{"status": "ok"})
}

// Version reports the running build
func (h *HealthHandler) Version(c *gin.Context) {
	utils.HandleSuccess(c, version.GetBuildInfo())
}
