package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/paylinkhq/router-core/pkg/logger"
)

// RequestIDHeader is the header used to propagate/generate a request id,
// in the teacher's middleware/logging.go idiom.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a request id to every inbound call, generating one
// when the caller didn't send it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Logging logs one line per request with method/path/status/duration,
// trimmed from the teacher's Logging middleware down to the fields this
// core's structured logger actually needs (no body capture — payment
// request/response bodies carry card data).
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request completed", fields)
		case c.Writer.Status() >= 400:
			logger.Warn("request completed", fields)
		default:
			logger.Info("request completed", fields)
		}
	}
}
