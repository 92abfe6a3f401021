package mediator

import (
	"reflect"
	"sync"
)

// Registry maps payload types to the handler identities registered for them.
//
// Registration order and multiplicity are preserved. Registries are
// append-only; the dispatcher and publisher only ever call Lookup.
type Registry interface {
	Register(payloadType reflect.Type, identity HandlerIdentity) error
	Lookup(payloadType reflect.Type) []HandlerIdentity
	Types() []reflect.Type
}

// registry is the unsynchronised implementation. Registration is expected
// to finish before the first dispatch.
type registry struct {
	entries map[reflect.Type][]HandlerIdentity
	order   []reflect.Type
}

// NewRegistry creates an empty registry
func NewRegistry() Registry {
	return &registry{
		entries: make(map[reflect.Type][]HandlerIdentity),
	}
}

// Register appends identity to the handlers of payloadType
func (r *registry) Register(payloadType reflect.Type, identity HandlerIdentity) error {
	if err := identity.validate(payloadType); err != nil {
		return &RegistrationError{
			PayloadType: payloadType,
			Identity:    identity,
			Reason:      err.Error(),
		}
	}

	if _, seen := r.entries[payloadType]; !seen {
		r.order = append(r.order, payloadType)
	}
	r.entries[payloadType] = append(r.entries[payloadType], identity)
	return nil
}

// Lookup returns a copy of the identities registered for payloadType
func (r *registry) Lookup(payloadType reflect.Type) []HandlerIdentity {
	found := r.entries[payloadType]
	out := make([]HandlerIdentity, len(found))
	copy(out, found)
	return out
}

// Types returns every payload type in first-registration order
func (r *registry) Types() []reflect.Type {
	out := make([]reflect.Type, len(r.order))
	copy(out, r.order)
	return out
}

// concurrentRegistry guards a registry with a RWMutex for hosts that keep
// registering handlers after traffic begins
type concurrentRegistry struct {
	mu    sync.RWMutex
	inner *registry
}

// NewConcurrentRegistry creates a registry safe for overlapping Register and Lookup
func NewConcurrentRegistry() Registry {
	return &concurrentRegistry{
		inner: &registry{entries: make(map[reflect.Type][]HandlerIdentity)},
	}
}

func (r *concurrentRegistry) Register(payloadType reflect.Type, identity HandlerIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Register(payloadType, identity)
}

func (r *concurrentRegistry) Lookup(payloadType reflect.Type) []HandlerIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inner.Lookup(payloadType)
}

func (r *concurrentRegistry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inner.Types()
}

// RegisterRequest registers a handler producing R from P, with type inference
func RegisterRequest[P any, R any](r Registry, name string) (HandlerIdentity, error) {
	id := RequestIdentity[P, R](name)
	return id, r.Register(id.PayloadType, id)
}

// RegisterVoidRequest registers a no-result handler for P
func RegisterVoidRequest[P any](r Registry, name string) (HandlerIdentity, error) {
	id := VoidRequestIdentity[P](name)
	return id, r.Register(id.PayloadType, id)
}

// RegisterNotification registers a handler reacting to N
func RegisterNotification[N any](r Registry, name string) (HandlerIdentity, error) {
	id := NotificationIdentity[N](name)
	return id, r.Register(id.PayloadType, id)
}
