// Standalone diagnostic for the news feed catalog. It probes every RSS/Atom
// feed the service would aggregate and reports reachability, item counts,
// and freshness, so a dead feed can be spotted before it burns refresh
// cycles in production.
//
// Usage:
//
//	go run scripts/diagnose_feeds.go [catalog.yaml]
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"world-monitor/internal/feed"
)

// FeedDiagnostic is the diagnostic result for a single feed.
type FeedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "FETCH_ERROR", "EMPTY"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseMs   int64  `json:"response_time_ms"`
}

func main() {
	catalog := feed.DefaultNewsCatalog()
	if len(os.Args) > 1 {
		loaded, err := feed.LoadNewsCatalog(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
			os.Exit(1)
		}
		catalog = loaded
	}

	client := &http.Client{Timeout: 15 * time.Second}
	results := make([]FeedDiagnostic, 0, len(catalog))
	failed := 0

	for _, nf := range catalog {
		diag := probe(client, nf)
		if diag.Status != "OK" {
			failed++
		}
		results = append(results, diag)
		fmt.Printf("%-10s %-30s items=%-4d latest=%-25s %dms %s\n",
			diag.Status, diag.Name, diag.ItemCount, diag.LatestDate, diag.ResponseMs, diag.ErrorMessage)
	}

	out, _ := json.MarshalIndent(results, "", "  ")
	fmt.Printf("\n%s\n", out)

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d feeds failing\n", failed, len(catalog))
		os.Exit(1)
	}
}

func probe(client *http.Client, nf feed.NewsFeed) FeedDiagnostic {
	diag := FeedDiagnostic{Name: nf.Name, URL: nf.URL}

	fp := gofeed.NewParser()
	fp.Client = client
	fp.UserAgent = "world-monitor/1.0"

	start := time.Now()
	parsed, err := fp.ParseURL(nf.URL)
	diag.ResponseMs = time.Since(start).Milliseconds()

	if err != nil {
		diag.Status = "FETCH_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(parsed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	diag.Status = "OK"
	for _, it := range parsed.Items {
		if it.PublishedParsed != nil && it.PublishedParsed.Format(time.RFC3339) > diag.LatestDate {
			diag.LatestDate = it.PublishedParsed.Format(time.RFC3339)
		}
	}
	return diag
}
