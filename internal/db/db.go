package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

type DB struct {
	*sql.DB
}

// Open opens the encrypted SQLite database at dbPath, keyed with password,
// and brings its schema up to date.
func Open(dbPath, password string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("%s?_key=%s", dbPath, url.QueryEscape(password))

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the web surface read while the editor writes
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{DB: sqlDB}
	if err := d.RunMigrations(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	version, err := d.SchemaVersion()
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	slog.Debug("database ready", "path", dbPath, "schema", version)
	return d, nil
}

// DefaultPath is ~/.config/quotepad/quotepad.db.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "quotepad", "quotepad.db"), nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
