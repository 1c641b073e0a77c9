package handler

import (
	"io/fs"
	"net/http"

	"go-blog-app/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the chi router for the public site.
// statics lists the registered static page names; each gets a top-level
// route. Every page route runs through the error middleware so resolver
// outcomes render as proper error pages.
func NewRouter(pageHandler *PageHandler, feedHandler *FeedHandler, seoHandler *SeoHandler, statics []string, errorMw func(middleware.AppHandler) http.Handler, staticFS fs.FS) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Page routes
	r.Method(http.MethodGet, "/", errorMw(pageHandler.indexHandler))
	r.Method(http.MethodGet, "/blog/{slug}", errorMw(pageHandler.entryHandler))
	for _, name := range statics {
		r.Method(http.MethodGet, "/"+name, errorMw(pageHandler.staticHandler(name)))
	}

	// Machine-readable surfaces
	r.Get("/feed.xml", feedHandler.feedHandler)
	r.Get("/sitemap.xml", seoHandler.sitemapHandler)
	r.Get("/robots.txt", seoHandler.robotsHandler)

	// Embedded assets; the FS is rooted above "static/" so request paths
	// map straight onto embedded paths.
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	// Everything else is an ordinary 404 page.
	r.NotFound(errorMw(pageHandler.notFoundHandler).ServeHTTP)

	return r
}
