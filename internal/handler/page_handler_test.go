//go:build unit

package handler

import (
	"context"
	"errors"
	"fmt"
	"go-blog-app/internal/config"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/render"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
	"go-blog-app/web"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// stubEntryStore is a hand-rolled EntryStore serving a fixed entry set.
type stubEntryStore struct {
	entries []*data.Entry
	err     error

	getCalls  int
	listCalls int
}

var _ service.EntryStore = (*stubEntryStore)(nil)

func (s *stubEntryStore) GetEntryBySlug(ctx context.Context, slug string) (*data.Entry, error) {
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	for _, e := range s.entries {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, fmt.Errorf("entry with slug '%s': %w", slug, data.ErrNotFound)
}

func (s *stubEntryStore) ListPublished(ctx context.Context) ([]*data.Entry, error) {
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	published := make([]*data.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Published {
			published = append(published, e)
		}
	}
	return published, nil
}

func setupRouter(t *testing.T, store *stubEntryStore) *chi.Mux {
	t.Helper()

	templates, err := view.NewTemplates(web.TemplateFS)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	log := logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)
	rc := view.Context{
		Name:        "Test Blog",
		BaseURL:     "https://blog.example.com",
		Description: "A test blog",
		Author:      "Tester",
	}

	resolver := service.NewResolver(store, templates, render.New())
	pageHandler := NewPageHandler(resolver, templates, rc, nil, 0, log)
	feedHandler := NewFeedHandler(store, rc)
	seoHandler := NewSeoHandler(store, resolver.StaticNames(), rc.BaseURL)
	errorMw := middleware.Error(log, templates, rc)

	return NewRouter(pageHandler, feedHandler, seoHandler, resolver.StaticNames(), errorMw, web.StaticFS)
}

func seededStore() *stubEntryStore {
	return &stubEntryStore{entries: []*data.Entry{
		{
			ID:          1,
			Slug:        "hello",
			Title:       "Hello",
			Description: "First post",
			Content:     "# Hi\n\nSome *text*.",
			CreatedAt:   time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
			ModifiedAt:  time.Date(2025, time.March, 2, 12, 0, 0, 0, time.UTC),
			Published:   true,
		},
		{
			ID:        2,
			Slug:      "draft",
			Title:     "Draft",
			Content:   "not yet",
			Published: false,
		},
	}}
}

func TestPageHandler_Routes(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "front page lists published entries",
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   []string{`href="/blog/hello"`, "Hello"},
		},
		{
			name:       "existing entry renders markdown",
			path:       "/blog/hello",
			wantStatus: http.StatusOK,
			wantBody:   []string{"Hi</h1>", "<em>text</em>", "First post"},
		},
		{
			name:       "unknown slug is a 404 page",
			path:       "/blog/999",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"404", "Page not found"},
		},
		{
			name:       "unpublished entry is a 404 page",
			path:       "/blog/draft",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"404"},
		},
		{
			name:       "about page",
			path:       "/about",
			wantStatus: http.StatusOK,
			wantBody:   []string{"About", "Test Blog"},
		},
		{
			name:       "unknown path is a 404 page",
			path:       "/no/such/page",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"404"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(t, seededStore())
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("want status %d; got %d", tc.wantStatus, rr.Code)
			}
			for _, want := range tc.wantBody {
				if !strings.Contains(rr.Body.String(), want) {
					t.Errorf("body does not contain expected string '%s'", want)
				}
			}
		})
	}
}

func TestPageHandler_FrontPageEscapesDraftNothing(t *testing.T) {
	router := setupRouter(t, seededStore())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Contains(rr.Body.String(), "Draft") {
		t.Error("unpublished entries must not appear on the front page")
	}
}

func TestPageHandler_StorageDownIs503(t *testing.T) {
	store := seededStore()
	store.err = errors.New("dial tcp: connection refused")
	router := setupRouter(t, store)

	for _, path := range []string{"/", "/blog/hello"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: want status 503; got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "temporarily unavailable") {
			t.Errorf("%s: expected the unavailable message, got: %s", path, rr.Body.String())
		}
	}
}

func TestPageHandler_StorageDownDoesNotTouchStaticPages(t *testing.T) {
	store := seededStore()
	store.err = errors.New("database is locked")
	router := setupRouter(t, store)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("want status 200; got %d", rr.Code)
	}
}

func TestFeedHandler_RSS(t *testing.T) {
	router := setupRouter(t, seededStore())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("want status 200; got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/rss+xml") {
		t.Errorf("want an rss content type; got %s", got)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"<rss", `version="2.0"`,
		"<title>Test Blog</title>",
		"<link>https://blog.example.com/blog/hello</link>",
		"<title>Hello</title>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("feed does not contain expected string '%s'", want)
		}
	}
	if strings.Contains(body, "Draft") {
		t.Error("unpublished entries must not appear in the feed")
	}
}

func TestSeoHandler_Sitemap(t *testing.T) {
	router := setupRouter(t, seededStore())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("want status 200; got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<loc>https://blog.example.com/</loc>",
		"<loc>https://blog.example.com/about</loc>",
		"<loc>https://blog.example.com/blog/hello</loc>",
		"<lastmod>2025-03-02</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap does not contain expected string '%s'", want)
		}
	}
}

func TestSeoHandler_Robots(t *testing.T) {
	router := setupRouter(t, seededStore())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("want status 200; got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "User-agent: *") {
		t.Error("expected a user-agent line")
	}
	if !strings.Contains(body, "Sitemap: https://blog.example.com/sitemap.xml") {
		t.Error("expected the sitemap location")
	}
}

func TestStaticAssets_Served(t *testing.T) {
	router := setupRouter(t, seededStore())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("want status 200; got %d", rr.Code)
	}
}
