package view

// StaticView renders a fixed page template that needs no entry data.
type StaticView struct {
	templates *Templates
	template  string
}

// NewStaticView creates a view over the named page template, e.g. "about.html".
func NewStaticView(templates *Templates, template string) *StaticView {
	return &StaticView{
		templates: templates,
		template:  template,
	}
}

type staticData struct {
	Ctx Context
}

// Render executes the fixed page fragment.
func (v *StaticView) Render(rc Context) (Document, error) {
	return v.templates.renderPage(v.template, staticData{Ctx: rc})
}
