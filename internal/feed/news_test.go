package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func rssBody(title string, items ...string) string {
	body := fmt.Sprintf(`<?xml version="1.0"?><rss version="2.0"><channel><title>%s</title>`, title)
	for i, item := range items {
		body += fmt.Sprintf(
			`<item><title>%s</title><link>https://example.test/%d</link><description>summary</description><pubDate>Sun, 30 Aug 2026 0%d:00:00 GMT</pubDate></item>`,
			item, i, i)
	}
	return body + `</channel></rss>`
}

func TestNewsAggregatesAcrossFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a":
			fmt.Fprint(w, rssBody("Feed A", "A story one", "A story two"))
		case "/b":
			fmt.Fprint(w, rssBody("Feed B", "B story"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	opts := testOptions(srv)
	catalog := []NewsFeed{
		{Name: "Feed A", URL: srv.URL + "/a"},
		{Name: "Feed B", URL: srv.URL + "/b"},
	}
	src, err := NewNews(opts, catalog)
	if err != nil {
		t.Fatalf("NewNews() error = %v", err)
	}
	src.Refresh(context.Background())

	headlines := snapshotData[Headline](t, opts, NewsSourceName)
	if len(headlines) != 3 {
		t.Fatalf("got %d headlines, want 3", len(headlines))
	}
	// Sorted newest-first across feeds.
	if headlines[0].Title != "A story two" {
		t.Errorf("first headline = %q, want the newest item", headlines[0].Title)
	}
	if headlines[0].SourceName != "Feed A" {
		t.Errorf("source name = %q", headlines[0].SourceName)
	}
}

func TestNewsToleratesPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			fmt.Fprint(w, rssBody("Healthy", "Only story"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	opts := testOptions(srv)
	catalog := []NewsFeed{
		{Name: "Broken", URL: srv.URL + "/missing"},
		{Name: "Healthy", URL: srv.URL + "/ok"},
	}
	src, err := NewNews(opts, catalog)
	if err != nil {
		t.Fatalf("NewNews() error = %v", err)
	}
	src.Refresh(context.Background())

	headlines := snapshotData[Headline](t, opts, NewsSourceName)
	if len(headlines) != 1 || headlines[0].Title != "Only story" {
		t.Fatalf("got %v, want the single healthy headline", headlines)
	}

	cb, _ := opts.Registry.Get(NewsSourceName)
	if cb.ConsecutiveFailures() != 0 {
		t.Errorf("partial failure counted against the breaker: %d", cb.ConsecutiveFailures())
	}
}

func TestNewsFailsWhenAllFeedsFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	opts := testOptions(srv)
	catalog := []NewsFeed{{Name: "Broken", URL: srv.URL + "/missing"}}
	src, err := NewNews(opts, catalog)
	if err != nil {
		t.Fatalf("NewNews() error = %v", err)
	}
	src.Refresh(context.Background())

	if _, ok := opts.Store.Get(NewsSourceName); ok {
		t.Error("a refresh with no working feeds should not write a snapshot")
	}
	cb, _ := opts.Registry.Get(NewsSourceName)
	if cb.ConsecutiveFailures() != 1 {
		t.Errorf("consecutive failures = %d, want 1", cb.ConsecutiveFailures())
	}
}

func TestNewNewsDefaultsCatalog(t *testing.T) {
	src, err := NewNews(Options{Store: NewStore(0)}, nil)
	if err != nil {
		t.Fatalf("NewNews() error = %v", err)
	}
	if len(src.catalog) == 0 {
		t.Error("expected the built-in catalog")
	}
}
