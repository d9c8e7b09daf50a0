package feed

import (
	"context"
	"time"

	"world-monitor/internal/resilience/circuitbreaker"
)

// NWSSourceName labels the National Weather Service integration.
const NWSSourceName = "NWS Weather"

const defaultNWSBaseURL = "https://api.weather.gov"

// NWS fetches active weather alerts from the National Weather Service.
type NWS struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *Client
	store   *Store
	baseURL string
}

// NewNWS creates the NWS alerts source.
func NewNWS(opts Options) (*NWS, error) {
	cb, err := opts.breaker(NWSSourceName)
	if err != nil {
		return nil, err
	}
	return &NWS{
		cb:      cb,
		client:  NewClient(opts.HTTPClient, 1, 2),
		store:   opts.Store,
		baseURL: opts.baseURL(defaultNWSBaseURL),
	}, nil
}

func (s *NWS) Name() string { return s.cb.Name() }

func (s *NWS) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *NWS) fetch(ctx context.Context) ([]WeatherAlert, error) {
	var payload struct {
		Features []struct {
			Properties struct {
				ID        string    `json:"id"`
				Event     string    `json:"event"`
				Severity  string    `json:"severity"`
				AreaDesc  string    `json:"areaDesc"`
				Headline  string    `json:"headline"`
				Effective time.Time `json:"effective"`
				Expires   time.Time `json:"expires"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := s.client.GetJSON(ctx, s.baseURL+"/alerts/active", &payload); err != nil {
		return nil, err
	}

	alerts := make([]WeatherAlert, 0, len(payload.Features))
	for _, f := range payload.Features {
		p := f.Properties
		alerts = append(alerts, WeatherAlert{
			ID:        p.ID,
			Event:     p.Event,
			Severity:  p.Severity,
			Area:      p.AreaDesc,
			Headline:  p.Headline,
			Effective: p.Effective,
			Expires:   p.Expires,
		})
	}
	return alerts, nil
}
