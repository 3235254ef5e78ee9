package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Waitlist product variants. The variant decides which form shape is accepted
// and which scoring policy is applied.
const (
	VariantSimple = "simple"
	VariantTiered = "tiered"
)

// Config holds application configuration
type Config struct {
	DatabaseURL     string
	RedisURL        string
	Port            string
	Environment     string
	WaitlistVariant string
	RunMigrations   bool
	// Security configuration
	AllowedOrigins     string
	TrustedProxies     string
	EnableRateLimit    bool
	RateLimitPerMinute int
	MaxRequestSize     int64
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENV", "development"),
		WaitlistVariant: strings.ToLower(getEnv("WAITLIST_VARIANT", VariantTiered)),
		RunMigrations:   getEnv("RUN_MIGRATIONS", "true") == "true",
		// Security configuration
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", ""),
		TrustedProxies:     getEnv("TRUSTED_PROXIES", ""),
		EnableRateLimit:    getEnv("ENABLE_RATE_LIMIT", "true") == "true",
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 20),
		MaxRequestSize:     getEnvAsInt64("MAX_REQUEST_SIZE", 64*1024), // 64KB default
	}
}

// Validate fails fast on settings the server cannot start with.
func (c *Config) Validate() error {
	if c.WaitlistVariant != VariantSimple && c.WaitlistVariant != VariantTiered {
		return fmt.Errorf("WAITLIST_VARIANT must be %q or %q, got %q", VariantSimple, VariantTiered, c.WaitlistVariant)
	}
	if c.DatabaseURL == "" && !c.IsDevelopment() {
		return fmt.Errorf("DATABASE_URL is required outside development")
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a positive integer, got %d", c.RateLimitPerMinute)
	}
	if c.MaxRequestSize < 1 {
		return fmt.Errorf("MAX_REQUEST_SIZE must be positive, got %d", c.MaxRequestSize)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase returns true if a Postgres connection string is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasRedis returns true if the shared rate limiter should use Redis
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		if c.IsDevelopment() {
			return []string{
				"http://localhost:3000",
				"http://localhost:3001",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:3001",
			}
		}
		return []string{}
	}
	origins := strings.Split(c.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// GetTrustedProxies returns a slice of trusted proxy IPs
func (c *Config) GetTrustedProxies() []string {
	if c.TrustedProxies == "" {
		return nil // gin treats nil as "trust no proxy"
	}
	return strings.Split(c.TrustedProxies, ",")
}
