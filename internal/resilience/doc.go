// Package resilience groups the reliability patterns that sit between the
// feed fetchers and their upstreams: per-integration circuit breakers and
// bounded retry with backoff.
//
// Every outbound data-feed call goes through a named circuit breaker and
// always yields a usable value:
//
//	cb, err := circuitbreaker.New(circuitbreaker.DefaultConfig("NWS Weather"))
//	alerts := circuitbreaker.Do(cb, func() ([]Alert, error) {
//	    return fetchAlerts(ctx)
//	}, nil)
//
// Transient failures inside a single refresh are retried before the breaker
// ever sees them:
//
//	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return fetchOnce(ctx)
//	})
package resilience
