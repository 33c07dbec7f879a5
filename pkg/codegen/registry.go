package codegen

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores generators by library and guards against duplicates.
type Registry struct {
	mu         sync.RWMutex
	generators map[Library]Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[Library]Generator),
	}
}

// Register adds a generator under its Library(). Duplicates return an error.
func (r *Registry) Register(generator Generator) error {
	if generator == nil {
		return fmt.Errorf("codegen: generator is required")
	}
	lib := generator.Library()
	if lib == "" {
		return fmt.Errorf("codegen: generator library is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[lib]; exists {
		return fmt.Errorf("codegen: generator %q already registered", lib)
	}
	r.generators[lib] = generator
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(generator Generator) {
	if err := r.Register(generator); err != nil {
		panic(err)
	}
}

// Get returns the generator for lib.
func (r *Registry) Get(lib Library) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	generator, ok := r.generators[lib]
	if !ok {
		return nil, fmt.Errorf("%w %q: not registered", ErrUnknownLibrary, lib)
	}
	return generator, nil
}

// Lookup parses raw and returns the matching generator.
func (r *Registry) Lookup(raw string) (Generator, error) {
	lib, err := ParseLibrary(raw)
	if err != nil {
		return nil, err
	}
	return r.Get(lib)
}

// List returns the registered libraries sorted by name.
func (r *Registry) List() []Library {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Library, 0, len(r.generators))
	for lib := range r.generators {
		out = append(out, lib)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports whether lib is registered.
func (r *Registry) Has(lib Library) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.generators[lib]
	return ok
}
