package domain

import (
	"context"
	"sort"
	"sync"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightProvider answers a single concrete FlightQuery.
type FlightProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Search returns the flights matching the query.
	Search(ctx context.Context, query FlightQuery) ([]Flight, error)
}

// ProviderRegistry keeps the providers known to the search flow, keyed by name.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]FlightProvider
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: make(map[string]FlightProvider)}
}

// Register adds or replaces a provider.
func (r *ProviderRegistry) Register(p FlightProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider with the given name, or nil.
func (r *ProviderRegistry) Get(name string) FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[name]
}

// GetAll returns every provider ordered by name.
func (r *ProviderRegistry) GetAll() []FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]FlightProvider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Names returns the registered provider names in sorted order.
func (r *ProviderRegistry) Names() []string {
	all := r.GetAll()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name()
	}
	return names
}
