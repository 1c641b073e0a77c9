package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed all:static
var staticFS embed.FS

// TemplateFS exposes the embedded page and layout templates.
var TemplateFS fs.FS = templateFS

// StaticFS exposes the embedded static assets, rooted at "static/".
var StaticFS fs.FS = staticFS
