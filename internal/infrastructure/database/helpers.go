package database

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Ping checks whether the database connection is alive and responsive.
// Called by health check endpoints to verify database availability.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	// Dedicated timeout so a dead database cannot hang the caller
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close shuts down the pool and releases resources.
// Safe to call multiple times - subsequent calls are no-ops.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		log.Println("[DATABASE] Pool is already closed or was never initialized")
		return nil
	}

	log.Println("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	log.Println("[DATABASE] Connection pool closed successfully")

	return nil
}

// Stats returns a snapshot of pool statistics for monitoring
func (db *PostgresDB) Stats() map[string]interface{} {
	if db.Pool == nil {
		return map[string]interface{}{"status": "closed"}
	}

	s := db.Pool.Stat()
	return map[string]interface{}{
		"acquired_conns": s.AcquiredConns(),
		"idle_conns":     s.IdleConns(),
		"total_conns":    s.TotalConns(),
		"max_conns":      s.MaxConns(),
		"acquire_count":  s.AcquireCount(),
	}
}
