package feed

import (
	"context"
	"fmt"

	"world-monitor/internal/resilience/circuitbreaker"
)

// UNHCRSourceName labels the UNHCR displacement-statistics integration.
const UNHCRSourceName = "UNHCR Displacement"

const defaultUNHCRBaseURL = "https://api.unhcr.org"

// unhcrPageLimit bounds one refresh to the largest origin/asylum pairs; the
// dashboard shows aggregates, not the full matrix.
const unhcrPageLimit = 100

// UNHCR fetches displaced-population statistics from the UNHCR API.
type UNHCR struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *Client
	store   *Store
	baseURL string
}

// NewUNHCR creates the UNHCR displacement source.
func NewUNHCR(opts Options) (*UNHCR, error) {
	cb, err := opts.breaker(UNHCRSourceName)
	if err != nil {
		return nil, err
	}
	return &UNHCR{
		cb:      cb,
		client:  NewClient(opts.HTTPClient, 1, 2),
		store:   opts.Store,
		baseURL: opts.baseURL(defaultUNHCRBaseURL),
	}, nil
}

func (s *UNHCR) Name() string { return s.cb.Name() }

func (s *UNHCR) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *UNHCR) fetch(ctx context.Context) ([]DisplacementFigure, error) {
	url := fmt.Sprintf("%s/population/v1/population/?limit=%d", s.baseURL, unhcrPageLimit)

	var payload struct {
		Items []struct {
			Year          int    `json:"year"`
			OriginName    string `json:"coo_name"`
			AsylumName    string `json:"coa_name"`
			Refugees      int64  `json:"refugees"`
			AsylumSeekers int64  `json:"asylum_seekers"`
			IDPs          int64  `json:"idps"`
		} `json:"items"`
	}

	if err := s.client.GetJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	figures := make([]DisplacementFigure, 0, len(payload.Items))
	for _, it := range payload.Items {
		figures = append(figures, DisplacementFigure{
			Year:          it.Year,
			Origin:        it.OriginName,
			Asylum:        it.AsylumName,
			Refugees:      it.Refugees,
			AsylumSeekers: it.AsylumSeekers,
			IDPs:          it.IDPs,
		})
	}
	return figures, nil
}
