package service

import (
	"context"
	"errors"
	"fmt"
	"go-blog-app/internal/data"
	"go-blog-app/internal/render"
	"go-blog-app/internal/view"
	"sort"
)

// Sentinel outcomes of route resolution, matched with errors.Is. ErrNotFound
// is an ordinary result for a route that points at nothing. ErrUnavailable
// means storage could not answer; it is never converted into a NotFound and
// never papered over with a default page.
var (
	ErrNotFound    = errors.New("page not found")
	ErrUnavailable = errors.New("content store unavailable")
)

// EntryLister lists published entries for surfaces that enumerate the site
// (front page, feed, sitemap).
type EntryLister interface {
	ListPublished(ctx context.Context) ([]*data.Entry, error)
}

// EntryStore defines the storage lookups the resolver consumes.
type EntryStore interface {
	EntryLister
	GetEntryBySlug(ctx context.Context, slug string) (*data.Entry, error)
}

// RouteKind tags the variants of Route.
type RouteKind int

const (
	RouteIndex RouteKind = iota
	RouteEntry
	RouteStatic
)

// Route is a logical destination: the front page, one entry addressed by
// slug, or a named static page.
type Route struct {
	Kind RouteKind
	Key  string
}

// IndexRoute addresses the front page.
func IndexRoute() Route { return Route{Kind: RouteIndex} }

// EntryRoute addresses a single entry by slug.
func EntryRoute(slug string) Route { return Route{Kind: RouteEntry, Key: slug} }

// StaticRoute addresses a registered static page by name.
func StaticRoute(name string) Route { return Route{Kind: RouteStatic, Key: name} }

// ResolvedPage pairs the view to render with the metadata for the page.
type ResolvedPage struct {
	View view.View
	Meta view.Meta
}

// PageResolver defines the interface handlers use to resolve routes.
type PageResolver interface {
	Resolve(ctx context.Context, route Route) (*ResolvedPage, error)
}

// StaticPage describes one registered static page.
type StaticPage struct {
	Template string
	Meta     view.Meta
}

// Resolver maps logical routes onto views. All state is fixed at
// construction, so a single Resolver serves concurrent requests.
type Resolver struct {
	store     EntryStore
	templates *view.Templates
	renderer  *render.Renderer
	statics   map[string]StaticPage
}

// NewResolver creates a Resolver with the standard static pages registered.
func NewResolver(store EntryStore, templates *view.Templates, renderer *render.Renderer) *Resolver {
	r := &Resolver{
		store:     store,
		templates: templates,
		renderer:  renderer,
		statics:   make(map[string]StaticPage),
	}
	r.RegisterStatic("about", StaticPage{
		Template: "about.html",
		Meta:     view.Meta{Title: "About", Description: "About this site", Kind: view.KindStatic},
	})
	return r
}

// RegisterStatic adds a static page under the given route name. Must happen
// before the resolver starts serving requests.
func (r *Resolver) RegisterStatic(name string, page StaticPage) {
	r.statics[name] = page
}

// StaticNames returns the registered static route names in stable order.
func (r *Resolver) StaticNames() []string {
	names := make([]string, 0, len(r.statics))
	for name := range r.statics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a route onto the view and metadata for it, performing at most
// one storage read. A missing or unpublished entry resolves to ErrNotFound;
// a storage failure, including context cancellation, to ErrUnavailable.
func (r *Resolver) Resolve(ctx context.Context, route Route) (*ResolvedPage, error) {
	switch route.Kind {
	case RouteIndex:
		return r.resolveIndex(ctx)
	case RouteEntry:
		return r.resolveEntry(ctx, route.Key)
	case RouteStatic:
		return r.resolveStatic(route.Key)
	}
	return nil, fmt.Errorf("unknown route kind %d: %w", route.Kind, ErrNotFound)
}

func (r *Resolver) resolveEntry(ctx context.Context, slug string) (*ResolvedPage, error) {
	entry, err := r.store.GetEntryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, fmt.Errorf("entry '%s': %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("entry '%s': %w: %v", slug, ErrUnavailable, err)
	}
	if !entry.Published {
		return nil, fmt.Errorf("entry '%s' is not published: %w", slug, ErrNotFound)
	}

	return &ResolvedPage{
		View: view.NewEntryView(r.templates, r.renderer, entry),
		Meta: view.Meta{Title: entry.Title, Description: entry.Description, Kind: view.KindEntry},
	}, nil
}

func (r *Resolver) resolveStatic(name string) (*ResolvedPage, error) {
	page, ok := r.statics[name]
	if !ok {
		return nil, fmt.Errorf("static page '%s': %w", name, ErrNotFound)
	}

	return &ResolvedPage{
		View: view.NewStaticView(r.templates, page.Template),
		Meta: page.Meta,
	}, nil
}

func (r *Resolver) resolveIndex(ctx context.Context) (*ResolvedPage, error) {
	entries, err := r.store.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("front page: %w: %v", ErrUnavailable, err)
	}

	return &ResolvedPage{
		View: view.NewIndexView(r.templates, entries),
		Meta: view.Meta{Kind: view.KindIndex},
	}, nil
}
