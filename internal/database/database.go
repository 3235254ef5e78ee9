package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the process-wide Postgres connection pool
type DB struct {
	*sql.DB
}

// PoolStats is a snapshot of connection pool usage
type PoolStats struct {
	MaxOpenConnections int
	MaxIdleConns       int
	OpenConnections    int
	InUse              int
	Idle               int
}

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	healthTimeout   = 2 * time.Second
)

// New opens the pool and verifies it with a ping. It is called once at startup.
func New(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &DB{DB: db}, nil
}

// HealthCheck pings the database with a short timeout
func (db *DB) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()
	return db.HealthCheckContext(ctx)
}

// HealthCheckContext checks connectivity within ctx
func (db *DB) HealthCheckContext(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// GetStats returns connection pool statistics
func (db *DB) GetStats() PoolStats {
	stats := db.Stats()
	return PoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		MaxIdleConns:       maxIdleConns,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
	}
}
