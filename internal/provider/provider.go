// Package provider defines the uniform adapter contract over external
// knowledge sources and its implementations.
//
// Adapters never return errors: transport failures, bad statuses, and
// empty result sets are converted internally into either an empty list
// or a placeholder record, so downstream stages always receive a
// well-formed (possibly degenerate) list.
package provider

import (
	"context"
	"sync"
	"time"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/internal/resilience"
)

// Adapter fetches normalized source records for a query. Fetch returns
// at most limit records, each with non-empty title, content, URL, and
// provider tag.
type Adapter interface {
	Provider() model.Provider
	Fetch(ctx context.Context, query string, limit int) []model.ResearchSource
}

// Registry holds the available adapters keyed by provider tag.
type Registry struct {
	mu       sync.RWMutex
	adapters map[model.Provider]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[model.Provider]Adapter)}
}

// Register adds an adapter to the registry.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Provider()] = a
}

// Get returns the adapter for a provider, or nil when none is registered.
func (r *Registry) Get(p model.Provider) Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[p]
}

// List returns the registered provider tags.
func (r *Registry) List() []model.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]model.Provider, 0, len(r.adapters))
	for p := range r.adapters {
		tags = append(tags, p)
	}
	return tags
}

// base carries the call policy shared by all adapters: a per-call
// timeout (a hung provider must not stall the batch) and a short retry
// for transient failures. now is injectable for tests that assert on
// placeholder citation years.
type base struct {
	timeout time.Duration
	retry   resilience.Config
	now     func() time.Time
}

func newBase(timeout time.Duration) base {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return base{
		timeout: timeout,
		retry:   resilience.DefaultConfig(),
		now:     time.Now,
	}
}

// call runs fn under the adapter deadline with transient-error retries.
func call[T any](ctx context.Context, b base, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return resilience.DoVal(ctx, b.retry, fn)
}

func truncate(sources []model.ResearchSource, limit int) []model.ResearchSource {
	if limit >= 0 && len(sources) > limit {
		return sources[:limit]
	}
	return sources
}
