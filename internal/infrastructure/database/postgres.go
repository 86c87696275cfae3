package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds everything needed to connect to PostgreSQL.
// Centralizes the parameters instead of passing them individually.
type DBConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string

	// Connection pool configuration
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration

	// Retry configuration
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// ConnectionString builds the pgx connection URL
func (c *DBConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName,
	)
}

// PostgresDB wraps a pgx connection pool
type PostgresDB struct {
	Pool   *pgxpool.Pool
	config *DBConfig
}

// NewPostgresDB creates the wrapper without connecting yet.
// Call Connect() to actually establish the pool.
func NewPostgresDB(config *DBConfig) *PostgresDB {
	return &PostgresDB{config: config}
}

// Connect establishes the connection pool with retry and backoff.
// Transient startup failures (DB container still booting) are the
// common case this retries through.
func (db *PostgresDB) Connect(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(db.config.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = db.config.MaxConns
	poolConfig.MinConns = db.config.MinConns
	poolConfig.MaxConnLifetime = db.config.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.config.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = db.config.HealthCheckPeriod

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= db.config.MaxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, db.config.ConnectTimeout)
		pool, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err == nil {
			err = pool.Ping(connectCtx)
		}
		cancel()

		if err == nil {
			db.Pool = pool
			log.Printf("[DATABASE] Connected to PostgreSQL (attempt %d/%d)", attempt, db.config.MaxRetries)
			return nil
		}

		log.Printf("[DATABASE] Connection attempt %d/%d failed: %v", attempt, db.config.MaxRetries, err)
		if attempt < db.config.MaxRetries {
			select {
			case <-time.After(db.config.RetryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", db.config.MaxRetries, err)
}

// HealthCheck verifies the pool is alive and has capacity
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if err := db.Ping(ctx); err != nil {
		return err
	}

	stats := db.Pool.Stat()
	if stats.TotalConns() == 0 && stats.MaxConns() > 0 {
		return fmt.Errorf("pool has no connections available")
	}

	return nil
}
