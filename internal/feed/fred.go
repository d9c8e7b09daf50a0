package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"world-monitor/internal/resilience/circuitbreaker"
)

// FREDSourceName labels the FRED economic-indicator integration.
const FREDSourceName = "FRED Economic"

const defaultFREDBaseURL = "https://api.stlouisfed.org"

// ErrMissingAPIKey is returned by constructors of integrations that cannot
// work without one.
var ErrMissingAPIKey = errors.New("api key is required")

// defaultFREDSeries are the indicators the dashboard shows out of the box:
// 10-year treasury yield and the VIX.
var defaultFREDSeries = []string{"DGS10", "VIXCLS"}

// fredObservationCount is how many trailing observations one refresh pulls
// per series.
const fredObservationCount = 30

// FRED fetches economic series observations from the St. Louis Fed API.
type FRED struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *Client
	store   *Store
	baseURL string
	apiKey  string
	series  []string
}

// NewFRED creates the FRED series source. The API key is mandatory; callers
// skip constructing the source when no key is configured.
func NewFRED(opts Options) (*FRED, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("fred: %w", ErrMissingAPIKey)
	}
	cb, err := opts.breaker(FREDSourceName)
	if err != nil {
		return nil, err
	}
	series := opts.Series
	if len(series) == 0 {
		series = defaultFREDSeries
	}
	return &FRED{
		cb:      cb,
		client:  NewClient(opts.HTTPClient, 1, 2),
		store:   opts.Store,
		baseURL: opts.baseURL(defaultFREDBaseURL),
		apiKey:  opts.APIKey,
		series:  series,
	}, nil
}

func (s *FRED) Name() string { return s.cb.Name() }

func (s *FRED) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *FRED) fetch(ctx context.Context) ([]SeriesPoint, error) {
	points := make([]SeriesPoint, 0, len(s.series)*fredObservationCount)

	for _, series := range s.series {
		q := url.Values{}
		q.Set("series_id", series)
		q.Set("api_key", s.apiKey)
		q.Set("file_type", "json")
		q.Set("sort_order", "desc")
		q.Set("limit", strconv.Itoa(fredObservationCount))

		var payload struct {
			Observations []struct {
				Date  string `json:"date"`
				Value string `json:"value"`
			} `json:"observations"`
		}

		endpoint := s.baseURL + "/fred/series/observations?" + q.Encode()
		if err := s.client.GetJSON(ctx, endpoint, &payload); err != nil {
			return nil, err
		}

		for _, obs := range payload.Observations {
			// FRED reports missing observations as ".".
			if obs.Value == "." {
				continue
			}
			value, err := strconv.ParseFloat(obs.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("fred: series %s has malformed value %q: %w", series, obs.Value, err)
			}
			points = append(points, SeriesPoint{
				Series: series,
				Date:   obs.Date,
				Value:  value,
			})
		}
	}
	return points, nil
}
