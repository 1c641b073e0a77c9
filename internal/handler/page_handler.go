package handler

import (
	"bytes"
	"errors"
	"go-blog-app/internal/cache"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// PageHandler resolves routes and writes rendered pages. The page cache is
// optional; when present, complete responses are cached by request path and
// served without touching the resolver.
type PageHandler struct {
	resolver  service.PageResolver
	templates *view.Templates
	rc        view.Context
	pageCache *cache.Cache
	cacheTTL  time.Duration
	log       logger.Logger
}

// NewPageHandler creates a new PageHandler. pageCache may be nil to disable
// response caching.
func NewPageHandler(resolver service.PageResolver, templates *view.Templates, rc view.Context, pageCache *cache.Cache, cacheTTL time.Duration, log logger.Logger) *PageHandler {
	return &PageHandler{
		resolver:  resolver,
		templates: templates,
		rc:        rc,
		pageCache: pageCache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// indexHandler serves the front page.
func (h *PageHandler) indexHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.servePage(w, r, service.IndexRoute())
}

// entryHandler serves a single entry addressed by its slug.
func (h *PageHandler) entryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.servePage(w, r, service.EntryRoute(chi.URLParam(r, "slug")))
}

// staticHandler serves a registered static page.
func (h *PageHandler) staticHandler(name string) middleware.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		return h.servePage(w, r, service.StaticRoute(name))
	}
}

// notFoundHandler turns every unrecognized path into the ordinary 404 page.
func (h *PageHandler) notFoundHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return &middleware.AppError{
		Error:   service.ErrNotFound,
		Message: "Page not found",
		Code:    http.StatusNotFound,
	}
}

func (h *PageHandler) servePage(w http.ResponseWriter, r *http.Request, route service.Route) *middleware.AppError {
	path := r.URL.Path

	if h.pageCache != nil {
		cached, err := h.pageCache.Get(path)
		if err != nil {
			h.log.Error(err, "Page cache read failed")
		}
		if cached != nil {
			writeHTML(w, cached)
			return nil
		}
	}

	page, err := h.resolver.Resolve(r.Context(), route)
	if err != nil {
		return toAppError(err)
	}

	doc, err := page.View.Render(h.rc)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}

	var buf bytes.Buffer
	if err := h.templates.WritePage(&buf, h.rc, page.Meta, doc); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}

	if h.pageCache != nil {
		if err := h.pageCache.Set(path, buf.Bytes(), h.cacheTTL); err != nil {
			h.log.Error(err, "Page cache write failed")
		}
	}

	writeHTML(w, buf.Bytes())
	return nil
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// toAppError maps resolver outcomes onto HTTP error responses. NotFound and
// Unavailable stay distinct all the way to the status code.
func toAppError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return &middleware.AppError{Error: err, Message: "Page not found", Code: http.StatusNotFound}
	case errors.Is(err, service.ErrUnavailable):
		return &middleware.AppError{Error: err, Message: "Content is temporarily unavailable", Code: http.StatusServiceUnavailable}
	}
	return &middleware.AppError{Error: err, Message: "Something went wrong", Code: http.StatusInternalServerError}
}
