package resolver

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// Binder registers handler identities and binds their factories in one step.
// It is the explicit registration list a host calls during startup.
type Binder struct {
	Registry  mediator.Registry
	Container *Container
	Lifetime  Lifetime
}

// NewBinder creates a binder over a fresh registry and container
func NewBinder() *Binder {
	return &Binder{
		Registry:  mediator.NewRegistry(),
		Container: NewContainer(),
		Lifetime:  Transient,
	}
}

func (b *Binder) bind(identity mediator.HandlerIdentity, factory Factory) error {
	if err := b.Registry.Register(identity.PayloadType, identity); err != nil {
		return err
	}
	// The same identity may be registered twice; it only needs one binding
	if b.Container.IsBound(identity) {
		return nil
	}
	if err := b.Container.Bind(identity, factory, b.Lifetime); err != nil {
		return fmt.Errorf("failed to bind %s: %w", identity.Name, err)
	}
	return nil
}

// BindRequest registers and binds a handler producing R from P
func BindRequest[P any, R any](b *Binder, name string, factory func() mediator.RequestHandler) error {
	return b.bind(mediator.RequestIdentity[P, R](name), func(context.Context) (any, error) {
		return factory(), nil
	})
}

// BindVoidRequest registers and binds a no-result handler for P
func BindVoidRequest[P any](b *Binder, name string, factory func() mediator.VoidRequestHandler) error {
	return b.bind(mediator.VoidRequestIdentity[P](name), func(context.Context) (any, error) {
		return factory(), nil
	})
}

// BindNotification registers and binds a handler reacting to N
func BindNotification[N any](b *Binder, name string, factory func() mediator.NotificationHandler) error {
	return b.bind(mediator.NotificationIdentity[N](name), func(context.Context) (any, error) {
		return factory(), nil
	})
}
