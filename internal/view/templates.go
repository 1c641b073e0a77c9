package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
)

// Templates holds the parsed page fragments and the base layout.
type Templates struct {
	pages  map[string]*template.Template
	layout *template.Template
}

// NewTemplates parses all page and layout templates from the given filesystem.
func NewTemplates(templateFS fs.FS) (*Templates, error) {
	t := &Templates{
		pages: make(map[string]*template.Template),
	}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		// The name of the template is the base name of the page file
		name := filepath.Base(page)
		ts, err := template.New(name).ParseFS(templateFS, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		t.pages[name] = ts
	}

	layout, err := template.New("base.html").ParseFS(templateFS, "templates/layouts/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	t.layout = layout

	return t, nil
}

// renderPage executes a page fragment by name into a Document.
func (t *Templates) renderPage(name string, data interface{}) (Document, error) {
	ts, ok := t.pages[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}

	// Execute the template into a buffer first to catch any errors
	// before the output is used.
	buf := new(bytes.Buffer)
	if err := ts.Execute(buf, data); err != nil {
		return "", err
	}
	return Document(buf.String()), nil
}

// layoutData is the payload the base layout receives.
type layoutData struct {
	Ctx  Context
	Meta Meta
	Body Document
}

// WritePage wraps a rendered document in the base layout and writes the
// complete page to w.
func (t *Templates) WritePage(w io.Writer, rc Context, meta Meta, body Document) error {
	buf := new(bytes.Buffer)
	if err := t.layout.Execute(buf, layoutData{Ctx: rc, Meta: meta, Body: body}); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
