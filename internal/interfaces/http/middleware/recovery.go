package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paylinkhq/router-core/pkg/logger"
	"github.com/paylinkhq/router-core/pkg/utils"
)

// Recovery turns a panic in a handler into a 500 response instead of a
// crashed process, in the teacher's error_handler.go idiom but trimmed to
// the single panic-recovery concern — error translation itself lives in
// utils.ErrorResponse, called directly by each handler.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("panic recovered", map[string]interface{}{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
					"panic":      recovered,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.Response{
					Success: false,
					Error: &utils.ErrorInfo{
						Kind:    "internal_server_error",
						Message: "an unexpected error occurred",
					},
				})
			}
		}()
		c.Next()
	}
}
