package view

import (
	"go-blog-app/internal/data"
	"go-blog-app/internal/render"
)

// EntryView composes one blog entry into a page document: a header block
// with the escaped title and description, the rendered Markdown body as
// trusted HTML, and an empty footer placeholder.
type EntryView struct {
	templates *Templates
	renderer  *render.Renderer
	entry     *data.Entry
}

// NewEntryView creates a view for a single entry.
func NewEntryView(templates *Templates, renderer *render.Renderer, entry *data.Entry) *EntryView {
	return &EntryView{
		templates: templates,
		renderer:  renderer,
		entry:     entry,
	}
}

// entryData is the payload for the entry page fragment. Entry fields pass
// through html/template escaping; Content is already sanitized and embeds
// as-is.
type entryData struct {
	Ctx     Context
	Entry   *data.Entry
	Content Document
}

// Render converts the entry's Markdown and executes the entry fragment.
func (v *EntryView) Render(rc Context) (Document, error) {
	return v.templates.renderPage("entry.html", entryData{
		Ctx:     rc,
		Entry:   v.entry,
		Content: v.renderer.Render(v.entry.Content),
	})
}
