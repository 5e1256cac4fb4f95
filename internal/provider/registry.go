package provider

import (
	"fmt"
	"sync"
)

// Registry manages the lifecycle of cloud providers. Implementations register
// themselves at startup; lookups happen by name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]CloudProvider
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]CloudProvider),
	}
}

// Register adds a provider under its own name. Registering the same name
// twice is a no-op.
func (r *Registry) Register(p CloudProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[p.Name()]; exists {
		return
	}
	r.providers[p.Name()] = p
}

// Get returns a registered provider.
func (r *Registry) Get(name string) (CloudProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not registered: %s", name)
	}
	return p, nil
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
