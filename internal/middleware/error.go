package middleware

import (
	"fmt"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/view"
	"net/http"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into user-friendly
// error pages. Panics from the wrapped handler are recovered and rendered as
// internal server errors.
func Error(log logger.Logger, templates *view.Templates, rc view.Context) func(AppHandler) http.Handler {
	renderError := func(w http.ResponseWriter, code int, message string) {
		doc, err := view.NewErrorView(templates, code, message).Render(rc)
		if err != nil {
			log.Error(err, "Failed to render error page")
			http.Error(w, message, code)
			return
		}

		meta := view.Meta{Title: http.StatusText(code), Kind: view.KindNotFound}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		if err := templates.WritePage(w, rc, meta, doc); err != nil {
			log.Error(err, "Failed to write error page")
		}
	}

	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					renderError(w, http.StatusInternalServerError, "Something went wrong.")
				}
			}()

			if appErr := next(w, r); appErr != nil {
				log.Error(appErr.Error, appErr.Message)
				renderError(w, appErr.Code, appErr.Message)
			}
		})
	}
}
