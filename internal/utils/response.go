package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleCreated sends a created response pointing at the new resource. An empty
// location omits the Location header.
func HandleCreated(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(data))
}

// HandleNoContent sends a success response with no content
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError aborts the request with an error envelope carrying the request id
func HandleError(c *gin.Context, status int, code common.ErrorCode, message string, details interface{}) {
	resp := common.NewErrorResponse(code, message, details)
	resp.Error.RequestID = c.GetString(constants.ContextKeyRequestID)
	c.AbortWithStatusJSON(status, resp)
}
