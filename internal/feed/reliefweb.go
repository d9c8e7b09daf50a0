package feed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"world-monitor/internal/resilience/circuitbreaker"
)

// ReliefWebSourceName labels the ReliefWeb humanitarian-updates integration.
const ReliefWebSourceName = "ReliefWeb Updates"

const defaultReliefWebBaseURL = "https://reliefweb.int"

// ReliefWeb scrapes the latest situation reports from the ReliefWeb updates
// river. The page has no stable API for this view, so it is parsed as HTML.
type ReliefWeb struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *Client
	store   *Store
	baseURL string
}

func NewReliefWeb(opts Options) (*ReliefWeb, error) {
	cb, err := opts.breaker(ReliefWebSourceName)
	if err != nil {
		return nil, err
	}
	return &ReliefWeb{
		cb:      cb,
		client:  NewClient(opts.HTTPClient, 0.5, 1),
		store:   opts.Store,
		baseURL: opts.baseURL(defaultReliefWebBaseURL),
	}, nil
}

func (s *ReliefWeb) Name() string { return s.cb.Name() }

func (s *ReliefWeb) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *ReliefWeb) fetch(ctx context.Context) ([]Headline, error) {
	body, err := s.client.Get(ctx, s.baseURL+"/updates", "text/html")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("reliefweb: parse updates page: %w", err)
	}

	var headlines []Headline
	doc.Find("article.rw-river-article").Each(func(_ int, article *goquery.Selection) {
		link := article.Find(".rw-river-article__title a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = s.baseURL + href
		}

		publishedAt := time.Now()
		if raw, ok := article.Find("time").First().Attr("datetime"); ok {
			if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
				publishedAt = parsed
			}
		}

		headlines = append(headlines, Headline{
			Title:       title,
			URL:         href,
			Summary:     strings.TrimSpace(article.Find(".rw-river-article__content").First().Text()),
			SourceName:  "ReliefWeb",
			PublishedAt: publishedAt,
		})
	})

	if len(headlines) == 0 {
		return nil, fmt.Errorf("reliefweb: no updates found on page")
	}
	return headlines, nil
}
