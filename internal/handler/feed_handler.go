package handler

import (
	"encoding/xml"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
	"net/http"
	"strings"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// FeedHandler serves the RSS feed of published entries.
type FeedHandler struct {
	entries service.EntryLister
	rc      view.Context
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(entries service.EntryLister, rc view.Context) *FeedHandler {
	return &FeedHandler{
		entries: entries,
		rc:      rc,
	}
}

// feedHandler generates the RSS 2.0 document.
func (h *FeedHandler) feedHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.ListPublished(r.Context())
	if err != nil {
		http.Error(w, "Failed to list entries for feed", http.StatusServiceUnavailable)
		return
	}

	base := strings.TrimRight(h.rc.BaseURL, "/")
	items := make([]rssItem, 0, len(entries))
	for _, entry := range entries {
		entryURL := base + "/blog/" + entry.Slug
		items = append(items, rssItem{
			Title:       entry.Title,
			Link:        entryURL,
			Description: entry.Description,
			PubDate:     entry.CreatedAt.Format(time.RFC1123Z),
			GUID:        entryURL,
		})
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       h.rc.Name,
			Link:        base,
			Description: h.rc.Description,
			Items:       items,
		},
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(feed); err != nil {
		http.Error(w, "Failed to generate feed XML", http.StatusInternalServerError)
		return
	}
}
