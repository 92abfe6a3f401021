package mediator

import (
	"context"
	"fmt"
)

// Resolver materializes a live handler instance for an identity.
//
// Lifetime and scoping of the instance belong to the resolver; the mediator
// resolves on every dispatch and keeps nothing between calls.
type Resolver interface {
	Resolve(ctx context.Context, identity HandlerIdentity) (any, error)
}

// ResolverFunc adapts a function into a Resolver
type ResolverFunc func(ctx context.Context, identity HandlerIdentity) (any, error)

// Resolve calls f
func (f ResolverFunc) Resolve(ctx context.Context, identity HandlerIdentity) (any, error) {
	return f(ctx, identity)
}

// resolveRequest resolves identity and adapts the instance to a HandlerFunc
// according to its capability
func resolveRequest(ctx context.Context, resolver Resolver, identity HandlerIdentity) (HandlerFunc, error) {
	instance, err := resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, &ResolutionError{Identity: identity, Err: err}
	}

	switch identity.Capability {
	case CapabilityRequest:
		h, ok := instance.(RequestHandler)
		if !ok {
			return nil, &ResolutionError{Identity: identity, Err: contractError(instance, "RequestHandler")}
		}
		return h.Handle, nil

	case CapabilityRequestNoResult:
		h, ok := instance.(VoidRequestHandler)
		if !ok {
			return nil, &ResolutionError{Identity: identity, Err: contractError(instance, "VoidRequestHandler")}
		}
		return func(ctx context.Context, request Request) (Response, error) {
			if err := h.Handle(ctx, request); err != nil {
				return nil, err
			}
			return Unit{}, nil
		}, nil
	}

	return nil, &ResolutionError{Identity: identity, Err: fmt.Errorf("%s cannot answer a request", identity.Capability)}
}

// resolveNotification resolves identity into a NotificationHandler
func resolveNotification(ctx context.Context, resolver Resolver, identity HandlerIdentity) (NotificationHandler, error) {
	instance, err := resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, &ResolutionError{Identity: identity, Err: err}
	}

	h, ok := instance.(NotificationHandler)
	if !ok {
		return nil, &ResolutionError{Identity: identity, Err: contractError(instance, "NotificationHandler")}
	}
	return h, nil
}

func contractError(instance any, contract string) error {
	if instance == nil {
		return fmt.Errorf("resolver returned nil instance")
	}
	return fmt.Errorf("%T does not implement %s", instance, contract)
}
