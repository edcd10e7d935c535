package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/utils"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logging.GetGlobalLogger().Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				utils.HandleError(c, http.StatusInternalServerError, common.ErrCodeInternalServer, "Internal server error", nil)
			}
		}()

		c.Next()
	}
}
