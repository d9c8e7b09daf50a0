package feed

import (
	"context"
	"strings"

	"world-monitor/internal/resilience/circuitbreaker"
)

// OpenSkySourceName labels the OpenSky aircraft-tracking integration.
const OpenSkySourceName = "OpenSky Aircraft"

const defaultOpenSkyBaseURL = "https://opensky-network.org"

// OpenSky fetches live aircraft state vectors from the OpenSky network.
type OpenSky struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *Client
	store   *Store
	baseURL string
}

func NewOpenSky(opts Options) (*OpenSky, error) {
	cb, err := opts.breaker(OpenSkySourceName)
	if err != nil {
		return nil, err
	}
	// The anonymous OpenSky API allows roughly one request per ten seconds.
	return &OpenSky{
		cb:      cb,
		client:  NewClient(opts.HTTPClient, 0.1, 1),
		store:   opts.Store,
		baseURL: opts.baseURL(defaultOpenSkyBaseURL),
	}, nil
}

func (s *OpenSky) Name() string { return s.cb.Name() }

func (s *OpenSky) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *OpenSky) fetch(ctx context.Context) ([]AircraftState, error) {
	// OpenSky encodes each state vector as a positional JSON array with
	// mixed types, so decoding goes through []any.
	var payload struct {
		Time   int64   `json:"time"`
		States [][]any `json:"states"`
	}
	if err := s.client.GetJSON(ctx, s.baseURL+"/api/states/all", &payload); err != nil {
		return nil, err
	}

	states := make([]AircraftState, 0, len(payload.States))
	for _, row := range payload.States {
		if len(row) < 10 {
			continue
		}
		states = append(states, AircraftState{
			ICAO24:    asString(row[0]),
			Callsign:  strings.TrimSpace(asString(row[1])),
			Country:   asString(row[2]),
			Longitude: asFloat(row[5]),
			Latitude:  asFloat(row[6]),
			Altitude:  asFloat(row[7]),
			OnGround:  asBool(row[8]),
			Velocity:  asFloat(row[9]),
		})
	}
	return states, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
