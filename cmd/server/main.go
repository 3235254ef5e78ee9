package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/pomegranate-waitlist/internal/api"
	"github.com/ajharbinger/pomegranate-waitlist/internal/database"
	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/middleware"
	"github.com/ajharbinger/pomegranate-waitlist/internal/repository"
	"github.com/ajharbinger/pomegranate-waitlist/internal/services"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer appLog.Sync()

	// Initialize the store. Development without DATABASE_URL runs in memory.
	var (
		repos   *repository.Repositories
		checker api.HealthChecker
	)
	if cfg.HasDatabase() {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			appLog.Fatal("Failed to connect to database", err)
		}
		defer db.Close()

		if cfg.RunMigrations {
			if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
				appLog.Fatal("Failed to run migrations", err)
			}
		}
		repos = repository.NewRepositories(db.DB)
		checker = db
	} else {
		appLog.Warn("DATABASE_URL not set, using in-memory waitlist store")
		repos = &repository.Repositories{Waitlist: repository.NewMemoryRepository()}
	}

	svcs, err := services.NewServices(repos, cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to create services", err)
	}
	appLog.Info("Waitlist policy selected", "variant", cfg.WaitlistVariant)

	var limiter middleware.Limiter
	if cfg.EnableRateLimit {
		limiter = newLimiter(cfg, appLog)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		appLog.Fatal("Invalid TRUSTED_PROXIES", err)
	}

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(appLog))
	r.Use(middleware.RecoveryMiddleware(appLog))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(r, svcs, checker, limiter, cfg, appLog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		appLog.Info("Server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("Shutdown error", err)
	}
}

// newLimiter shares the rate limit through Redis when configured and falls back
// to a per-process limiter otherwise.
func newLimiter(cfg *config.Config, appLog logger.Logger) middleware.Limiter {
	if cfg.HasRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			appLog.Info("Rate limiting through Redis", "per_minute", cfg.RateLimitPerMinute)
			return middleware.NewRedisLimiter(client, cfg.RateLimitPerMinute, time.Minute)
		}
		appLog.Warn("Redis unavailable, rate limiting per process", "error", err)
	}
	return middleware.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
}
