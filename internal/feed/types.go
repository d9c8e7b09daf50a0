package feed

import "time"

// WeatherAlert is one active alert from the NWS API.
type WeatherAlert struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Severity  string    `json:"severity"`
	Area      string    `json:"area"`
	Headline  string    `json:"headline"`
	Effective time.Time `json:"effective"`
	Expires   time.Time `json:"expires"`
}

// DisplacementFigure is one origin/asylum population row from the UNHCR API.
type DisplacementFigure struct {
	Year          int    `json:"year"`
	Origin        string `json:"origin"`
	Asylum        string `json:"asylum"`
	Refugees      int64  `json:"refugees"`
	AsylumSeekers int64  `json:"asylum_seekers"`
	IDPs          int64  `json:"idps"`
}

// SeriesPoint is one observation of a FRED economic series.
type SeriesPoint struct {
	Series string  `json:"series"`
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
}

// AircraftState is one state vector from the OpenSky network.
type AircraftState struct {
	ICAO24    string  `json:"icao24"`
	Callsign  string  `json:"callsign"`
	Country   string  `json:"country"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Altitude  float64 `json:"altitude"`
	Velocity  float64 `json:"velocity"`
	OnGround  bool    `json:"on_ground"`
}

// MarketOdds is one prediction-market quote from Polymarket.
type MarketOdds struct {
	Question string    `json:"question"`
	Slug     string    `json:"slug"`
	Price    float64   `json:"price"`
	Volume   float64   `json:"volume"`
	EndDate  time.Time `json:"end_date"`
}

// Headline is one news or situation-report entry, from RSS feeds or the
// ReliefWeb updates page.
type Headline struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Summary     string    `json:"summary,omitempty"`
	SourceName  string    `json:"source_name,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
