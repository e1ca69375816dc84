package cache

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

// Instance is the type-independent view of a Cache used for administration.
type Instance interface {
	Name() string
	Stats() Stats
	Size() int
	Clear()
	Cleanup() int
}

var _ Instance = (*Cache[string])(nil)

// Registry holds the named cache instances of a process.
type Registry struct {
	mu     sync.RWMutex
	caches map[string]Instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caches: make(map[string]Instance)}
}

// Register adds a cache, replacing any instance with the same name.
func (r *Registry) Register(c Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caches[c.Name()] = c
}

// Get returns the named cache or an error wrapping domain.ErrCacheNotFound.
func (r *Registry) Get(name string) (Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caches[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCacheNotFound, name)
	}
	return c, nil
}

// All returns every registered cache sorted by name.
func (r *Registry) All() []Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Instance, 0, len(r.caches))
	for _, c := range r.caches {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Stats returns a snapshot for every registered cache sorted by name.
func (r *Registry) Stats() []Stats {
	all := r.All()
	result := make([]Stats, 0, len(all))
	for _, c := range all {
		result = append(result, c.Stats())
	}
	return result
}

// Cleanup evicts expired entries from every cache and returns the total removed.
func (r *Registry) Cleanup() int {
	total := 0
	for _, c := range r.All() {
		total += c.Cleanup()
	}
	return total
}
