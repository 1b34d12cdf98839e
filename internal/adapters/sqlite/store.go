package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the shared sqlite handle behind the page and menu stores.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the content database at dbPath.
func Open(dbPath string) (*DB, error) {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			parent_id INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS menu_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			page_id INTEGER NOT NULL DEFAULT 0,
			url TEXT NOT NULL DEFAULT '',
			parent_id INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pages_title ON pages(title);
		CREATE INDEX IF NOT EXISTS idx_pages_parent ON pages(parent_id);
		CREATE INDEX IF NOT EXISTS idx_menu_items_title ON menu_items(title);
		CREATE INDEX IF NOT EXISTS idx_menu_items_parent ON menu_items(parent_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Pages returns the page store backed by this database.
func (d *DB) Pages() *PageStore {
	return &PageStore{db: d.db}
}

// Menu returns the menu item store backed by this database.
func (d *DB) Menu() *MenuStore {
	return &MenuStore{db: d.db}
}
