package handler

import (
	"encoding/xml"
	"fmt"
	"go-blog-app/internal/service"
	"net/http"
	"strings"
)

// SeoHandler serves sitemap.xml and robots.txt.
type SeoHandler struct {
	entries service.EntryLister
	statics []string
	baseURL string
}

// NewSeoHandler creates a new SeoHandler. statics lists the static route
// names included in the sitemap alongside the front page and the entries.
func NewSeoHandler(entries service.EntryLister, statics []string, baseURL string) *SeoHandler {
	return &SeoHandler{
		entries: entries,
		statics: statics,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Sitemap: "+h.baseURL+"/sitemap.xml")
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates and serves a dynamic sitemap.xml covering the
// front page, the static pages, and every published entry.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.ListPublished(r.Context())
	if err != nil {
		http.Error(w, "Failed to list entries for sitemap", http.StatusServiceUnavailable)
		return
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}
	sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + "/"})
	for _, name := range h.statics {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + "/" + name})
	}
	for _, entry := range entries {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     h.baseURL + "/blog/" + entry.Slug,
			LastMod: entry.ModifiedAt.Format(sitemapDateFormat),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
