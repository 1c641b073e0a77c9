package view

import (
	"html/template"
)

// Document is a rendered, trusted HTML fragment. It aliases template.HTML so
// html/template embeds it without re-escaping; everything inside a Document
// has already been escaped or sanitized upstream.
type Document = template.HTML

// View renders itself into a Document using the site-wide render context.
// Views hold their own data and share only immutable state, so a single View
// value is safe to render from concurrent requests.
type View interface {
	Render(rc Context) (Document, error)
}

// Context carries the site-wide settings handed explicitly to every view at
// render time. Views receive no configuration through globals or request
// context values.
type Context struct {
	Name        string
	BaseURL     string
	Description string
	Author      string
	Nav         []NavLink
}

// NavLink is one link in the site navigation bar.
type NavLink struct {
	Label string
	Href  string
}

// Kind classifies the page a Meta describes.
type Kind int

const (
	KindEntry Kind = iota
	KindStatic
	KindIndex
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindStatic:
		return "static"
	case KindIndex:
		return "index"
	case KindNotFound:
		return "notfound"
	}
	return "unknown"
}

// Meta is the per-page metadata consumed by the layout head and the SEO
// surfaces. It is built fresh for every resolution and discarded with the
// response.
type Meta struct {
	Title       string
	Description string
	Kind        Kind
}

// OGType maps the page kind onto the Open Graph type vocabulary.
func (m Meta) OGType() string {
	if m.Kind == KindEntry {
		return "article"
	}
	return "website"
}
