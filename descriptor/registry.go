package descriptor

import (
	"context"
	"slices"
	"sync"
)

// Registry is an in-memory Broker. Endpoints are described in the order
// they are added. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	urls        []string
	meta        BrokerMetadata
	setup       func(context.Context) error
	subscribers []Endpoint
	publishers  []Endpoint
}

var _ Broker = (*Registry)(nil)

// NewRegistry creates a Registry with the given metadata and connection
// URLs.
func NewRegistry(meta BrokerMetadata, urls ...string) *Registry {
	return &Registry{meta: meta, urls: slices.Clone(urls)}
}

// OnSetup installs a hook run by Setup.
func (r *Registry) OnSetup(fn func(context.Context) error) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setup = fn
	return r
}

// AddSubscriber registers consuming endpoints.
func (r *Registry) AddSubscriber(endpoints ...Endpoint) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, endpoints...)
	return r
}

// AddPublisher registers producing endpoints.
func (r *Registry) AddPublisher(endpoints ...Endpoint) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishers = append(r.publishers, endpoints...)
	return r
}

// Setup runs the setup hook, if any. It may be called more than once.
func (r *Registry) Setup(ctx context.Context) error {
	r.mu.RLock()
	fn := r.setup
	r.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// URLs returns a copy of the connection URLs.
func (r *Registry) URLs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.urls)
}

// Metadata returns the broker metadata.
func (r *Registry) Metadata() BrokerMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meta
}

// Subscribers returns a copy of the subscriber list.
func (r *Registry) Subscribers() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.subscribers)
}

// Publishers returns a copy of the publisher list.
func (r *Registry) Publishers() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.publishers)
}
