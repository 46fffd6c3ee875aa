// Package db is the PostgreSQL replay and audit store.
//
// Battles are stored with their seed and canonical event log so an auditor
// can re-run the stage and compare bytes. Enhancement attempts are stored
// with the roll that decided them.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Replays returns a ReplayRepository over this pool.
func (d *DB) Replays() *ReplayRepository {
	return NewReplayRepository(d.pool)
}

// Enhancements returns an EnhancementRepository over this pool.
func (d *DB) Enhancements() *EnhancementRepository {
	return NewEnhancementRepository(d.pool)
}
