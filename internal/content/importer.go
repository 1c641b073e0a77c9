package content

import (
	"context"
	"fmt"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// EntryWriter is the storage half the importer needs.
type EntryWriter interface {
	UpsertEntry(ctx context.Context, entry *data.Entry) error
}

// entryFrontMatter is the YAML envelope at the top of a content file. Every
// field is optional; missing values fall back to file name and mtime.
type entryFrontMatter struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Slug        string    `yaml:"slug"`
	Date        time.Time `yaml:"date"`
	Draft       bool      `yaml:"draft"`
}

// Importer syncs Markdown files from a content directory into entry storage.
// Files map onto entries by slug, taken from the frontmatter or derived from
// the file name, so re-running a sync updates entries in place. Removed
// files keep their stored entries.
type Importer struct {
	store EntryWriter
	log   logger.Logger
}

// NewImporter creates an Importer writing through the given store.
func NewImporter(store EntryWriter, log logger.Logger) *Importer {
	return &Importer{
		store: store,
		log:   log,
	}
}

// Sync walks dir and upserts every Markdown file found. It returns the
// number of imported entries. Per-file failures are logged and skipped so
// one bad file cannot block the rest of the content.
func (i *Importer) Sync(ctx context.Context, dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if err := i.importFile(ctx, path); err != nil {
			i.log.Error(err, "Failed to import content file")
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to walk content dir: %w", err)
	}
	return count, nil
}

func (i *Importer) importFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var meta entryFrontMatter
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return fmt.Errorf("failed to parse frontmatter in %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	slug := meta.Slug
	if slug == "" {
		slug = Slugify(base)
	}
	if slug == "" {
		return fmt.Errorf("cannot derive a slug for %s", path)
	}

	title := meta.Title
	if title == "" {
		title = base
	}

	modified := time.Now()
	if info, err := os.Stat(path); err == nil {
		modified = info.ModTime()
	}
	created := meta.Date
	if created.IsZero() {
		created = modified
	}

	entry := &data.Entry{
		Slug:        slug,
		Title:       title,
		Description: meta.Description,
		Content:     string(body),
		CreatedAt:   created,
		ModifiedAt:  modified,
		Published:   !meta.Draft,
	}
	if err := i.store.UpsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to store %s: %w", path, err)
	}
	return nil
}

// Slugify converts a file name into a URL slug: lowercased, spaces and
// underscores collapse into single dashes, everything else outside [a-z0-9]
// is dropped.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
		case r == ' ', r == '_', r == '-':
			pendingDash = true
		}
	}
	return b.String()
}
