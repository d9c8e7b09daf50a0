package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"world-monitor/internal/resilience/circuitbreaker"
	"world-monitor/internal/resilience/retry"
)

// NewsSourceName labels the aggregated world-news RSS integration.
const NewsSourceName = "World News"

// newsHeadlineLimit caps the aggregated headline list per refresh.
const newsHeadlineLimit = 50

// NewsFeed is one RSS/Atom feed in the news catalog.
type NewsFeed struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// DefaultNewsCatalog is the built-in set of feeds used when no catalog file
// is configured.
func DefaultNewsCatalog() []NewsFeed {
	return []NewsFeed{
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		{Name: "Reuters via GDELT", URL: "https://blog.gdeltproject.org/feed/"},
		{Name: "UN News", URL: "https://news.un.org/feed/subscribe/en/news/all/rss.xml"},
	}
}

// News aggregates headlines across a catalog of RSS/Atom feeds. A refresh
// tolerates individual feed failures and only fails when every feed does.
type News struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *http.Client
	store   *Store
	retry   retry.Config
	catalog []NewsFeed
}

// NewNews creates the news source over the given catalog. An empty catalog
// falls back to the built-in one.
func NewNews(opts Options, catalog []NewsFeed) (*News, error) {
	cb, err := opts.breaker(NewsSourceName)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		catalog = DefaultNewsCatalog()
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &News{
		cb:      cb,
		client:  client,
		store:   opts.Store,
		retry:   retry.FeedFetchConfig(),
		catalog: catalog,
	}, nil
}

func (s *News) Name() string { return s.cb.Name() }

func (s *News) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *News) fetch(ctx context.Context) ([]Headline, error) {
	headlines := make([]Headline, 0, len(s.catalog)*10)
	failed := 0

	for _, nf := range s.catalog {
		items, err := s.fetchOne(ctx, nf)
		if err != nil {
			failed++
			slog.Warn("news feed fetch failed",
				slog.String("feed", nf.Name),
				slog.String("url", nf.URL),
				slog.String("error", err.Error()))
			continue
		}
		headlines = append(headlines, items...)
	}

	if failed == len(s.catalog) {
		return nil, fmt.Errorf("news: all %d feeds failed", failed)
	}

	sort.Slice(headlines, func(i, j int) bool {
		return headlines[i].PublishedAt.After(headlines[j].PublishedAt)
	})
	if len(headlines) > newsHeadlineLimit {
		headlines = headlines[:newsHeadlineLimit]
	}
	return headlines, nil
}

func (s *News) fetchOne(ctx context.Context, nf NewsFeed) ([]Headline, error) {
	var parsed *gofeed.Feed

	err := retry.WithBackoff(ctx, s.retry, func() error {
		fp := gofeed.NewParser()
		fp.UserAgent = "world-monitor/1.0"
		fp.Client = s.client

		var parseErr error
		parsed, parseErr = fp.ParseURLWithContext(nf.URL, ctx)
		return parseErr
	})
	if err != nil {
		return nil, err
	}

	items := make([]Headline, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}
		items = append(items, Headline{
			Title:       it.Title,
			URL:         it.Link,
			Summary:     it.Description,
			SourceName:  nf.Name,
			PublishedAt: pubAt,
		})
	}
	return items, nil
}
