package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
)

// HealthChecker is satisfied by the database wrapper. A nil checker means the
// process runs on the in-memory store.
type HealthChecker interface {
	HealthCheckContext(ctx context.Context) error
}

// HealthHandler reports whether the service can reach its store
type HealthHandler struct {
	checker HealthChecker
	log     logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker HealthChecker, log logger.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, log: log}
}

// Health returns 200 when the store answers a ping and 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	if h.checker == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "memory"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.checker.HealthCheckContext(ctx); err != nil {
		h.log.Error("Health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}
