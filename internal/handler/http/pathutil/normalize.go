// Package pathutil normalizes URL paths for use as metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// pathPatterns maps dynamic routes to templates. Patterns are pre-compiled
// and evaluated in order.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	// Per-source snapshot and status routes carry the source label in the
	// path (URL-encoded, so spaces arrive as %20 or +).
	{regexp.MustCompile(`^/api/feeds/[^/]+$`), "/api/feeds/:source"},
	{regexp.MustCompile(`^/api/status/[^/]+$`), "/api/status/:source"},
}

// NormalizePath collapses dynamic URL paths to templates so metric label
// cardinality stays bounded by the route table, not by the data.
//
//	NormalizePath("/api/feeds/NWS%20Weather")  // "/api/feeds/:source"
//	NormalizePath("/api/status")               // "/api/status" (unchanged)
//	NormalizePath("/healthz")                  // "/healthz" (unchanged)
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
