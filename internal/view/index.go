package view

import (
	"go-blog-app/internal/data"
)

// IndexView lists published entries on the front page, newest first. The
// entries are captured at construction; ordering is the storage layer's.
type IndexView struct {
	templates *Templates
	entries   []*data.Entry
}

// NewIndexView creates the front-page view over the given entries.
func NewIndexView(templates *Templates, entries []*data.Entry) *IndexView {
	return &IndexView{
		templates: templates,
		entries:   entries,
	}
}

type indexData struct {
	Ctx     Context
	Entries []*data.Entry
}

// Render executes the index fragment.
func (v *IndexView) Render(rc Context) (Document, error) {
	return v.templates.renderPage("index.html", indexData{
		Ctx:     rc,
		Entries: v.entries,
	})
}
