package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound marks a lookup that matched no entry. Callers distinguish it
// from connection-level failures with errors.Is.
var ErrNotFound = errors.New("entry not found")

const entryColumns = `id, slug, title, description, content, created_at, modified_at, published`

// SQLEntryRepository is a concrete implementation of the entry storage
// interfaces using sqlx. It works against both the sqlite and mysql drivers.
type SQLEntryRepository struct {
	db *sqlx.DB
}

// NewSQLEntryRepository creates a new SQLEntryRepository.
func NewSQLEntryRepository(db *sqlx.DB) *SQLEntryRepository {
	return &SQLEntryRepository{db: db}
}

// GetEntryBySlug retrieves a single entry from the database by its slug.
func (r *SQLEntryRepository) GetEntryBySlug(ctx context.Context, slug string) (*Entry, error) {
	var entry Entry
	query := `SELECT ` + entryColumns + ` FROM entries WHERE slug = ?`
	if err := r.db.GetContext(ctx, &entry, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entry with slug '%s': %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry by slug: %w", err)
	}
	return &entry, nil
}

// GetEntryByID retrieves a single entry from the database by its ID.
func (r *SQLEntryRepository) GetEntryByID(ctx context.Context, id int64) (*Entry, error) {
	var entry Entry
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entry with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry by id: %w", err)
	}
	return &entry, nil
}

// ListPublished retrieves all published entries, newest first.
func (r *SQLEntryRepository) ListPublished(ctx context.Context) ([]*Entry, error) {
	var entries []*Entry
	query := `SELECT ` + entryColumns + ` FROM entries WHERE published = ? ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &entries, query, true); err != nil {
		return nil, fmt.Errorf("failed to list published entries: %w", err)
	}
	return entries, nil
}

// ListAll retrieves every entry including drafts, newest first.
func (r *SQLEntryRepository) ListAll(ctx context.Context) ([]*Entry, error) {
	var entries []*Entry
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// UpsertEntry inserts the entry or, when its slug already exists, updates
// the stored row. The entry's ID is set to the stored row's ID either way.
// A select-then-write keeps the statement portable across both engines.
func (r *SQLEntryRepository) UpsertEntry(ctx context.Context, entry *Entry) error {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM entries WHERE slug = ?`, entry.Slug)
	switch {
	case err == sql.ErrNoRows:
		insert := `INSERT INTO entries (slug, title, description, content, created_at, modified_at, published)
			VALUES (:slug, :title, :description, :content, :created_at, :modified_at, :published)`
		res, err := r.db.NamedExecContext(ctx, insert, entry)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		if newID, err := res.LastInsertId(); err == nil {
			entry.ID = newID
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up entry for upsert: %w", err)
	}

	entry.ID = id
	update := `UPDATE entries SET title = :title, description = :description, content = :content,
		created_at = :created_at, modified_at = :modified_at, published = :published WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, update, entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry from the database by its slug.
func (r *SQLEntryRepository) DeleteEntry(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("entry with slug '%s': %w", slug, ErrNotFound)
	}
	return nil
}
