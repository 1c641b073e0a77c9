package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Cache stores fully rendered pages in a SQLite database, keyed by request
// path. It sits in the serving layer; the rendering pipeline itself never
// consults it.
type Cache struct {
	db *sqlx.DB
}

// New opens the SQLite database at the given file path and ensures the page
// table exists.
func New(filePath string) (*Cache, error) {
	db, err := sqlx.Connect("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite cache: %w", err)
	}

	// WAL mode keeps concurrent readers from blocking the writer.
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return nil, fmt.Errorf("failed to set WAL mode on sqlite cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		path TEXT PRIMARY KEY,
		body BLOB,
		expires_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_pages_expires_at ON pages (expires_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get retrieves a cached page. It returns nil bytes on a miss or an expired
// row; neither is an error.
func (c *Cache) Get(path string) ([]byte, error) {
	var row struct {
		Body      []byte `db:"body"`
		ExpiresAt int64  `db:"expires_at"`
	}
	query := `SELECT body, expires_at FROM pages WHERE path = ?`
	err := c.db.Get(&row, query, path)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page from cache: %w", err)
	}

	if time.Now().Unix() > row.ExpiresAt {
		// Expired rows are deleted lazily, best effort.
		_ = c.Delete(path)
		return nil, nil
	}

	return row.Body, nil
}

// Set stores a rendered page under the given path with a time-to-live.
func (c *Cache) Set(path string, body []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()
	query := `INSERT OR REPLACE INTO pages (path, body, expires_at) VALUES (?, ?, ?)`
	_, err := c.db.Exec(query, path, body, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// Delete removes one cached page.
func (c *Cache) Delete(path string) error {
	query := `DELETE FROM pages WHERE path = ?`
	_, err := c.db.Exec(query, path)
	if err != nil {
		return fmt.Errorf("failed to delete page from cache: %w", err)
	}
	return nil
}

// Flush drops every cached page. Called after a content sync so stale
// renders never outlive their entries.
func (c *Cache) Flush() error {
	_, err := c.db.Exec(`DELETE FROM pages`)
	if err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
