package circuitbreaker

import (
	"sort"
	"sync"
)

// Registry is an explicit name-to-breaker mapping so a central diagnostics
// surface can enumerate every integration's breaker. Data-fetch modules
// register their breakers at construction time; the registry holds no other
// state and breakers work the same without one.
type Registry struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
}

// NewRegistry creates an empty breaker registry.
func NewRegistry() *Registry {
	return &Registry{
		breakers: make(map[string]*CircuitBreaker),
	}
}

// GetOrCreate returns the breaker registered under cfg.Name, creating and
// registering it on first use. Two integrations never share a breaker unless
// they deliberately share a name.
func (r *Registry) GetOrCreate(cfg Config) (*CircuitBreaker, error) {
	r.mu.RLock()
	cb, ok := r.breakers[cfg.Name]
	r.mu.RUnlock()
	if ok {
		return cb, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check after acquiring the write lock.
	if cb, ok = r.breakers[cfg.Name]; ok {
		return cb, nil
	}

	cb, err := New(cfg)
	if err != nil {
		return nil, err
	}
	r.breakers[cfg.Name] = cb
	return cb, nil
}

// Get returns the breaker registered under name, if any.
func (r *Registry) Get(name string) (*CircuitBreaker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.breakers[name]
	return cb, ok
}

// Names returns the registered integration names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.breakers))
	for name := range r.breakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered breaker, sorted by name.
func (r *Registry) All() []*CircuitBreaker {
	r.mu.RLock()
	breakers := make([]*CircuitBreaker, 0, len(r.breakers))
	for _, cb := range r.breakers {
		breakers = append(breakers, cb)
	}
	r.mu.RUnlock()

	sort.Slice(breakers, func(i, j int) bool {
		return breakers[i].name < breakers[j].name
	})
	return breakers
}

// Statuses returns one display line per registered breaker, sorted by name,
// for the diagnostics panel.
func (r *Registry) Statuses() []string {
	all := r.All()
	statuses := make([]string, 0, len(all))
	for _, cb := range all {
		statuses = append(statuses, cb.Status())
	}
	return statuses
}
