package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/service"
)

// HandleAPIError is a utility function for consistent error handling across the API
// Service errors are mapped onto their status codes; anything else falls back to the defaults.
// Error details are only exposed outside release mode.
func HandleAPIError(c *gin.Context, err error, defaultStatus int, defaultCode common.ErrorCode, defaultMessage string) {
	status, code, message := classify(err, defaultStatus, defaultCode, defaultMessage)

	logging.GetGlobalLogger().Error("%s %s | %s | %d | %s: %v",
		c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, message, err)

	var errorDetails interface{}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		errorDetails = err.Error()
	}

	HandleError(c, status, code, message, errorDetails)
}

func classify(err error, status int, code common.ErrorCode, message string) (int, common.ErrorCode, string) {
	switch {
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized, common.ErrCodeUnauthorized, "Authentication required"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, common.ErrCodeValidation, message
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, common.ErrCodeNotFound, "Resource not found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, common.ErrCodeConflict, message
	case errors.Is(err, service.ErrRemoteStore):
		return http.StatusBadGateway, common.ErrCodeRemoteStore, message
	}
	return status, code, message
}
