package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/middleware"
	"github.com/ajharbinger/pomegranate-waitlist/internal/services"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

// SetupRoutes configures all API routes. limiter may be nil when rate limiting
// is disabled.
func SetupRoutes(r *gin.Engine, svcs *services.Services, checker HealthChecker, limiter middleware.Limiter, cfg *config.Config, log logger.Logger) {
	waitlistHandler := NewWaitlistHandler(svcs.Waitlist, log)
	healthHandler := NewHealthHandler(checker, log)

	r.GET("/health", healthHandler.Health)

	// /api/waitlist is the path the web form posts to
	for _, path := range []string{"/waitlist", "/api/waitlist"} {
		group := r.Group(path)
		group.Use(middleware.InputValidationMiddleware(cfg))
		if limiter != nil {
			group.Use(middleware.RateLimitingMiddleware(limiter, log))
		}
		group.POST("", waitlistHandler.Join)
		group.GET("", waitlistHandler.Status)
	}
}
