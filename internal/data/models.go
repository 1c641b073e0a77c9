package data

import (
	"time"
)

// Entry represents a single blog entry in the database. Content holds the
// raw Markdown source; rendered HTML is produced downstream and never stored.
type Entry struct {
	ID          int64     `db:"id"`
	Slug        string    `db:"slug"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Content     string    `db:"content"`
	CreatedAt   time.Time `db:"created_at"`
	ModifiedAt  time.Time `db:"modified_at"`
	Published   bool      `db:"published"`
}
