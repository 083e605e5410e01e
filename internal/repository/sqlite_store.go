package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/quotepad/internal/db"
	"github.com/andy/quotepad/internal/domain"
)

// SQLiteStore keeps the snapshot in the encrypted kv table
type SQLiteStore struct {
	db  *db.DB
	key string
}

// NewSQLiteStore creates a store over an open database. An empty key uses
// DefaultKey.
func NewSQLiteStore(database *db.DB, key string) *SQLiteStore {
	if key == "" {
		key = DefaultKey
	}
	return &SQLiteStore{db: database, key: key}
}

// Load reads the snapshot
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Invoice, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return decode(s.key, []byte(value))
}

// Save replaces the snapshot
func (s *SQLiteStore) Save(ctx context.Context, inv *domain.Invoice) error {
	data, err := encode(inv)
	if err != nil {
		return err
	}

	query := `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, s.key, string(data), time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
