package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/ajharbinger/pomegranate-waitlist/internal/errors"
	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// SecurityHeadersMiddleware adds security headers to all responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking attacks
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME-type confusion attacks
		c.Header("X-Content-Type-Options", "nosniff")

		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// JSON API only, nothing to load
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")

		// Waitlist status answers are per-person
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		c.Next()
	}
}

// CORSMiddleware allows the configured frontend origins to call the API
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, origin := range cfg.GetAllowedOrigins() {
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			_, ok := allowed[origin]
			return ok
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	})
}

// InputValidationMiddleware caps the body size, requires JSON bodies on writes
// and screens obviously hostile user agents.
func InputValidationMiddleware(cfg *config.Config) gin.HandlerFunc {
	maxSize := cfg.MaxRequestSize

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			contentType := c.GetHeader("Content-Type")
			if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"error": "Content-Type must be application/json",
				})
				return
			}
		}

		// Block scanners that announce themselves
		suspiciousPatterns := []string{
			"sqlmap",
			"nikto",
			"nmap",
			"masscan",
			"<script",
			"javascript:",
		}

		userAgentLower := strings.ToLower(c.GetHeader("User-Agent"))
		for _, pattern := range suspiciousPatterns {
			if strings.Contains(userAgentLower, pattern) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Request blocked for security reasons",
				})
				return
			}
		}

		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from the MaxBytesReader installed by
// InputValidationMiddleware.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// RequestIDMiddleware reuses the caller's request id or assigns a fresh one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LoggingMiddleware logs one structured line per request. Emails in query
// strings are never logged.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}
		if id, ok := c.Get("request_id"); ok {
			fields = append(fields, "request_id", id)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", nil, fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// RecoveryMiddleware turns a panic into the same JSON 500 body the handlers
// use for internal errors.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered", fmt.Errorf("%v", recovered),
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apperrors.MsgInternal})
	})
}
