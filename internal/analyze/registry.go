package analyze

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type AnalyzerFactory func(ctx context.Context) (Analyzer, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]AnalyzerFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]AnalyzerFactory)}
}

func (r *Registry) Register(name string, f AnalyzerFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Get(ctx context.Context, name string) (Analyzer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown analyzer provider: %s", name)
	}
	return f(ctx)
}
