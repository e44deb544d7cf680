package chatbot

import (
	"fmt"

	"co-brain-be/pkg/llm/factory"
	"co-brain-be/pkg/store"

	"go.uber.org/zap"
)

// Registry selects the dispatcher for a provider tag.
type Registry struct {
	dispatchers map[store.Provider]Dispatcher
}

func NewRegistry(dispatchers map[store.Provider]Dispatcher) *Registry {
	m := make(map[store.Provider]Dispatcher, len(dispatchers))
	for p, d := range dispatchers {
		m[p] = d
	}
	return &Registry{dispatchers: m}
}

// NewDefaultRegistry builds one dispatcher per supported provider from the
// backend factory.
func NewDefaultRegistry(backends map[store.Provider]factory.BackendConfig, settings map[store.Provider]Settings, logger *zap.Logger) (*Registry, error) {
	dispatchers := make(map[store.Provider]Dispatcher, len(store.Providers))
	for _, p := range store.Providers {
		backend, err := factory.NewLLMProvider(p, backends[p])
		if err != nil {
			return nil, fmt.Errorf("build %s backend: %w", p, err)
		}
		dispatchers[p] = NewDispatcher(p, backend, settings[p], logger)
	}
	return &Registry{dispatchers: dispatchers}, nil
}

func (r *Registry) Get(p store.Provider) (Dispatcher, bool) {
	d, ok := r.dispatchers[p]
	return d, ok
}
