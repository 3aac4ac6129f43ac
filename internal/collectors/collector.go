package collectors

import (
	"context"
	"sort"
	"sync"

	"github.com/yairfalse/kulut/pkg/types"
)

// Collector gathers resource records from one provider. The returned map
// goes from resource-type name to the records collected for it; any
// subset of types may be present or absent, and the core never requires
// a fixed registry of known types. Collectors are unreliable by nature
// and must tolerate partial failures internally, returning whatever they
// managed to gather.
type Collector interface {
	Name() string
	Status() string
	Collect(ctx context.Context) (map[string][]types.Resource, error)
}

// Registry holds the available collectors.
type Registry struct {
	mu         sync.RWMutex
	collectors map[string]Collector
}

// NewRegistry creates an empty collector registry.
func NewRegistry() *Registry {
	return &Registry{collectors: make(map[string]Collector)}
}

// Register adds a collector, replacing any prior one with the same name.
func (r *Registry) Register(c Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[c.Name()] = c
}

// Get looks a collector up by name.
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collectors[name]
	return c, ok
}

// List returns registered collector names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.collectors))
	for name := range r.collectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CollectAll runs every registered collector and merges the results.
// A collector that fails outright contributes nothing; its error is
// reported alongside the merged map so callers can log and continue.
func (r *Registry) CollectAll(ctx context.Context) (map[string][]types.Resource, map[string]error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	merged := map[string][]types.Resource{}
	failures := map[string]error{}

	for name, c := range r.collectors {
		resources, err := c.Collect(ctx)
		if err != nil {
			failures[name] = err
		}
		for resourceType, list := range resources {
			merged[resourceType] = append(merged[resourceType], list...)
		}
	}

	return merged, failures
}
