package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paylinkhq/router-core/internal/infrastructure/database/postgres"
	"github.com/paylinkhq/router-core/internal/infrastructure/database/redis"
)

// HealthHandler reports liveness/readiness for the two stateful
// dependencies this core owns, trimmed from the teacher's much larger
// multi-component HealthHandler down to what this repo actually wires:
// Postgres and Redis.
type HealthHandler struct {
	db    *postgres.Database
	redis *redis.RedisClient
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *postgres.Database, redis *redis.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Liveness handles GET /health/live — process is up, nothing else checked.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Readiness handles GET /health/ready — both stores must answer.
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := gin.H{"timestamp": time.Now()}

	dbErr := h.db.Health()
	status["database"] = healthEntry(dbErr)

	redisErr := h.redis.Ping(c.Request.Context())
	status["redis"] = healthEntry(redisErr)

	if dbErr != nil || redisErr != nil {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	status["status"] = "healthy"
	c.JSON(http.StatusOK, status)
}

func healthEntry(err error) gin.H {
	if err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{"status": "healthy"}
}
