package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

var (
	// ErrNotBound is returned when no factory is bound for an identity
	ErrNotBound = errors.New("no binding for handler")

	// ErrAlreadyBound is returned when an identity is bound twice
	ErrAlreadyBound = errors.New("handler already bound")
)

// Lifetime controls how often a binding's factory runs
type Lifetime int

const (
	// Transient builds a new instance on every resolve
	Transient Lifetime = iota
	// Singleton builds the instance once and reuses it
	Singleton
)

// Factory builds a handler instance
type Factory func(ctx context.Context) (any, error)

type binding struct {
	factory  Factory
	lifetime Lifetime

	mu       sync.Mutex
	built    bool
	instance any
}

// resolve caches a singleton only once its factory succeeds; a failed build
// is retried on the next resolve
func (b *binding) resolve(ctx context.Context) (any, error) {
	if b.lifetime != Singleton {
		return b.factory(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return b.instance, nil
	}
	instance, err := b.factory(ctx)
	if err != nil {
		return nil, err
	}
	b.instance, b.built = instance, true
	return instance, nil
}

// Container is a static table of handler factories implementing mediator.Resolver
type Container struct {
	mu       sync.RWMutex
	bindings map[mediator.HandlerIdentity]*binding
}

// NewContainer creates an empty container
func NewContainer() *Container {
	return &Container{
		bindings: make(map[mediator.HandlerIdentity]*binding),
	}
}

// Bind associates identity with factory under the given lifetime
func (c *Container) Bind(identity mediator.HandlerIdentity, factory Factory, lifetime Lifetime) error {
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for %s", identity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.bindings[identity]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, identity)
	}
	c.bindings[identity] = &binding{factory: factory, lifetime: lifetime}
	return nil
}

// BindInstance binds a prebuilt instance as a singleton
func (c *Container) BindInstance(identity mediator.HandlerIdentity, instance any) error {
	return c.Bind(identity, func(context.Context) (any, error) { return instance, nil }, Singleton)
}

// Resolve implements mediator.Resolver
func (c *Container) Resolve(ctx context.Context, identity mediator.HandlerIdentity) (any, error) {
	c.mu.RLock()
	b, ok := c.bindings[identity]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBound, identity)
	}
	return b.resolve(ctx)
}

// IsBound reports whether identity has a binding
func (c *Container) IsBound(identity mediator.HandlerIdentity) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[identity]
	return ok
}
