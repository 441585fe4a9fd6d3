package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PoolConfig sizes the connection pool
type PoolConfig struct {
	MaxConnections int
	MaxIdleTime    time.Duration
}

// OpenPostgres opens and pings a PostgreSQL connection pool
func OpenPostgres(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if pool.MaxConnections > 0 {
		db.SetMaxOpenConns(pool.MaxConnections)
		db.SetMaxIdleConns(max(pool.MaxConnections/2, 1))
	}
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
