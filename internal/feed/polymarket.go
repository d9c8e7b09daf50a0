package feed

import (
	"context"
	"fmt"
	"time"

	"world-monitor/internal/resilience/circuitbreaker"
)

// PolymarketSourceName labels the Polymarket prediction-market integration.
const PolymarketSourceName = "Polymarket Markets"

const defaultPolymarketBaseURL = "https://gamma-api.polymarket.com"

// polymarketPageLimit is how many open markets one refresh pulls.
const polymarketPageLimit = 20

// Polymarket fetches open prediction markets from the Polymarket gamma API.
type Polymarket struct {
	cb      *circuitbreaker.CircuitBreaker
	client  *Client
	store   *Store
	baseURL string
}

func NewPolymarket(opts Options) (*Polymarket, error) {
	cb, err := opts.breaker(PolymarketSourceName)
	if err != nil {
		return nil, err
	}
	return &Polymarket{
		cb:      cb,
		client:  NewClient(opts.HTTPClient, 1, 2),
		store:   opts.Store,
		baseURL: opts.baseURL(defaultPolymarketBaseURL),
	}, nil
}

func (s *Polymarket) Name() string { return s.cb.Name() }

func (s *Polymarket) Refresh(ctx context.Context) {
	refresh(ctx, s.Name(), s.cb, s.store, s.fetch)
}

func (s *Polymarket) fetch(ctx context.Context) ([]MarketOdds, error) {
	var payload []struct {
		Question       string  `json:"question"`
		Slug           string  `json:"slug"`
		LastTradePrice float64 `json:"lastTradePrice"`
		VolumeNum      float64 `json:"volumeNum"`
		EndDate        string  `json:"endDate"`
	}
	endpoint := fmt.Sprintf("%s/markets?closed=false&order=volumeNum&ascending=false&limit=%d", s.baseURL, polymarketPageLimit)
	if err := s.client.GetJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	odds := make([]MarketOdds, 0, len(payload))
	for _, market := range payload {
		if market.Question == "" {
			continue
		}
		endDate, _ := time.Parse(time.RFC3339, market.EndDate)
		odds = append(odds, MarketOdds{
			Question: market.Question,
			Slug:     market.Slug,
			Price:    market.LastTradePrice,
			Volume:   market.VolumeNum,
			EndDate:  endDate,
		})
	}
	return odds, nil
}
