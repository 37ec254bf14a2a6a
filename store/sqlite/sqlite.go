package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/smallnest/clickflow/store"
)

// SqliteStore implements store.Store using SQLite
type SqliteStore struct {
	db        *sql.DB
	tableName string
}

var _ store.Store = (*SqliteStore)(nil)

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "kv"
}

// NewSqliteStore opens the database and creates the table if needed
func NewSqliteStore(opts SqliteOptions) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "kv"
	}

	s := &SqliteStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist
func (s *SqliteStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key
func (s *SqliteStore) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?", s.tableName)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key
func (s *SqliteStore) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *SqliteStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in lexical order
func (s *SqliteStore) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT key FROM %s ORDER BY key ASC", s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
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
