package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/service"
	"github.com/osa911/teamchat/internal/session"
	"github.com/osa911/teamchat/internal/utils"
)

// apiPrefix is where the v1 routes are mounted
const apiPrefix = "/api/v1"

// resourcePath builds an absolute API path from escaped segments
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return apiPrefix + "/" + strings.Join(escaped, "/")
}

// currentIdentity returns the verified identity or writes a 401
func currentIdentity(c *gin.Context) (*session.Identity, bool) {
	identity, ok := session.FromContext(c.Request.Context())
	if !ok {
		utils.HandleAPIError(c, fmt.Errorf("%w: no session on request", service.ErrAuth),
			http.StatusUnauthorized, common.ErrCodeUnauthorized, "Authentication required")
		return nil, false
	}
	return identity, true
}

// validated returns the request body stored by the validation middleware
func validated[T any](c *gin.Context, key string) (*T, bool) {
	val, exists := c.Get(key)
	if !exists {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeBadRequest, "Missing validated request", nil)
		return nil, false
	}
	req, ok := val.(*T)
	if !ok {
		utils.HandleError(c, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid request type in context", nil)
		return nil, false
	}
	return req, true
}
