package view

import (
	"net/http"
)

// ErrorView renders the error page for an HTTP status code.
type ErrorView struct {
	templates *Templates
	code      int
	message   string
}

// NewErrorView creates a view for an error response. The message is shown to
// the reader and should stay generic.
func NewErrorView(templates *Templates, code int, message string) *ErrorView {
	return &ErrorView{
		templates: templates,
		code:      code,
		message:   message,
	}
}

type errorData struct {
	Ctx     Context
	Code    int
	Status  string
	Message string
}

// Render executes the error fragment.
func (v *ErrorView) Render(rc Context) (Document, error) {
	return v.templates.renderPage("error.html", errorData{
		Ctx:     rc,
		Code:    v.code,
		Status:  http.StatusText(v.code),
		Message: v.message,
	})
}
