package feed

import (
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// snapshotCapacity is comfortably above the number of integrations; the LRU
// bound exists so a misconfigured source list cannot grow memory unbounded.
const snapshotCapacity = 64

// Snapshot is the last successfully fetched data for one source. It is what
// the dashboard renders; while a breaker is open the snapshot simply stops
// advancing.
type Snapshot struct {
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Items     int       `json:"items"`
	Data      any       `json:"data"`
}

// Store holds the last-known snapshot per source. Entries expire after the
// configured TTL so the API stops serving data that has been stale for far
// longer than any cooldown.
type Store struct {
	cache *expirable.LRU[string, Snapshot]
}

// NewStore creates a snapshot store whose entries expire after ttl.
// A ttl of zero disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, Snapshot](snapshotCapacity, nil, ttl),
	}
}

// Put records a fresh snapshot for source.
func (s *Store) Put(source string, items int, data any) {
	s.cache.Add(source, Snapshot{
		Source:    source,
		FetchedAt: time.Now(),
		Items:     items,
		Data:      data,
	})
}

// Get returns the last-known snapshot for source, if one is still live.
func (s *Store) Get(source string) (Snapshot, bool) {
	return s.cache.Get(source)
}

// All returns every live snapshot, sorted by source name.
func (s *Store) All() []Snapshot {
	values := s.cache.Values()
	sort.Slice(values, func(i, j int) bool {
		return values[i].Source < values[j].Source
	})
	return values
}
