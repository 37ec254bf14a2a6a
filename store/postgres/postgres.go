package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smallnest/clickflow/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements store.Store using PostgreSQL
type PostgresStore struct {
	pool      DBPool
	tableName string
}

var _ store.Store = (*PostgresStore)(nil)

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "kv"
}

// NewPostgresStore creates a new Postgres store
func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return NewPostgresStoreWithPool(pool, opts.TableName), nil
}

// NewPostgresStoreWithPool creates a new Postgres store with an existing pool.
// Useful for testing with mocks.
func NewPostgresStoreWithPool(pool DBPool, tableName string) *PostgresStore {
	if tableName == "" {
		tableName = "kv"
	}
	return &PostgresStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL)`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Get returns the value stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = $1", s.tableName)

	var value string
	if err := s.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf("INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at", s.tableName)

	if _, err := s.pool.Exec(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", s.tableName)
	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in lexical order
func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT key FROM %s ORDER BY key ASC", s.tableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating key rows: %w", err)
	}
	return keys, nil
}
