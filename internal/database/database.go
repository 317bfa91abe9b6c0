// Package database opens the claims Postgres database and migrates it.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Config holds connection settings for the claims database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxRetries    int
	RetryInterval time.Duration
}

// DSN renders the key/value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

func (c Config) retries() (int, time.Duration) {
	attempts, interval := c.MaxRetries, c.RetryInterval
	if attempts <= 0 {
		attempts = 1
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return attempts, interval
}

// Connect opens a pgx pool, retrying until the database answers a ping.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	attempts, interval := cfg.retries()

	var lastErr error
	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.New(ctx, cfg.DSN())
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				logger.Info("Successfully connected to database",
					zap.String("host", cfg.Host),
					zap.String("database", cfg.Name))
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		logger.Warn("Error connecting to database",
			zap.Int("attempt", i+1),
			zap.Error(err))

		if i+1 < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, lastErr)
}

// OpenSQL opens a database/sql handle through lib/pq. Migrations run over it.
func OpenSQL(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}
