package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"world-monitor/internal/resilience/circuitbreaker"
)

// testOptions wires a source at a test server with a fast breaker. 404 is
// used for failure responses in these tests because it is not retried, so a
// failing refresh costs exactly one request.
func testOptions(srv *httptest.Server) Options {
	return Options{
		Registry:   circuitbreaker.NewRegistry(),
		Store:      NewStore(0),
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Breaker: circuitbreaker.Config{
			FailureThreshold: 2,
			Cooldown:         50 * time.Millisecond,
		},
	}
}

func TestRefreshKeepsSnapshotOnFailure(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"features":[{"properties":{"id":"a1","event":"Tornado Warning","severity":"Extreme","areaDesc":"Dallas County","headline":"Tornado Warning for Dallas County"}}]}`))
	}))
	defer srv.Close()

	opts := testOptions(srv)
	src, err := NewNWS(opts)
	if err != nil {
		t.Fatalf("NewNWS() error = %v", err)
	}

	src.Refresh(context.Background())

	snap, ok := opts.Store.Get(NWSSourceName)
	if !ok {
		t.Fatal("expected a snapshot after a successful refresh")
	}
	if snap.Items != 1 {
		t.Errorf("snapshot items = %d, want 1", snap.Items)
	}
	firstFetch := snap.FetchedAt

	healthy = false
	src.Refresh(context.Background())

	snap, ok = opts.Store.Get(NWSSourceName)
	if !ok {
		t.Fatal("snapshot disappeared after a failed refresh")
	}
	if !snap.FetchedAt.Equal(firstFetch) {
		t.Error("failed refresh overwrote the last-known snapshot")
	}
	if snap.Items != 1 {
		t.Errorf("snapshot items after failure = %d, want 1", snap.Items)
	}
}

func TestRefreshTripsBreakerAndShortCircuits(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opts := testOptions(srv)
	src, err := NewNWS(opts)
	if err != nil {
		t.Fatalf("NewNWS() error = %v", err)
	}

	// Two failing refreshes reach the threshold.
	src.Refresh(context.Background())
	src.Refresh(context.Background())

	cb, ok := opts.Registry.Get(NWSSourceName)
	if !ok {
		t.Fatal("breaker not registered for source")
	}
	if !cb.IsOpen() {
		t.Fatalf("breaker state = %v, want open", cb.State())
	}

	// With the breaker open, a refresh never reaches the upstream.
	before := requests
	src.Refresh(context.Background())
	if requests != before {
		t.Errorf("open breaker let a request through: %d -> %d", before, requests)
	}
}

func TestRefreshRecoversAfterCooldown(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	opts := testOptions(srv)
	src, err := NewNWS(opts)
	if err != nil {
		t.Fatalf("NewNWS() error = %v", err)
	}

	src.Refresh(context.Background())
	src.Refresh(context.Background())

	cb, _ := opts.Registry.Get(NWSSourceName)
	if !cb.IsOpen() {
		t.Fatal("breaker should be open after reaching the failure threshold")
	}

	healthy = true
	time.Sleep(80 * time.Millisecond)

	src.Refresh(context.Background())

	if got := cb.State(); got.String() != "closed" {
		t.Errorf("breaker state after successful probe = %v, want closed", got)
	}
	if _, ok := opts.Store.Get(NWSSourceName); !ok {
		t.Error("expected a snapshot after the probe succeeded")
	}
}

func TestOptionsBreakerUsesRegistry(t *testing.T) {
	reg := circuitbreaker.NewRegistry()
	opts := Options{Registry: reg, Store: NewStore(0)}

	cb, err := opts.breaker("Example Upstream")
	if err != nil {
		t.Fatalf("breaker() error = %v", err)
	}

	registered, ok := reg.Get("Example Upstream")
	if !ok {
		t.Fatal("breaker was not placed in the registry")
	}
	if registered != cb {
		t.Error("registry returned a different breaker instance")
	}
}

func TestOptionsBaseURLTrimsTrailingSlash(t *testing.T) {
	opts := Options{BaseURL: "https://example.test/api/"}
	if got := opts.baseURL("https://default.test"); got != "https://example.test/api" {
		t.Errorf("baseURL() = %q", got)
	}

	opts = Options{}
	if got := opts.baseURL("https://default.test"); got != "https://default.test" {
		t.Errorf("baseURL() default = %q", got)
	}
}
