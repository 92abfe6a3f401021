package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// Notification represents an event with zero or more independent listeners
type Notification interface{}

// Unit is the response substituted for handlers that produce no result
type Unit struct{}

// RequestHandler handles a specific request type and produces a response
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// VoidRequestHandler handles a request for its side effects only
type VoidRequestHandler interface {
	Handle(ctx context.Context, request Request) error
}

// NotificationHandler reacts to a notification
type NotificationHandler interface {
	Handle(ctx context.Context, notification Notification) error
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle makes HandlerFunc satisfy RequestHandler
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Behavior is a function that wraps handler execution with cross-cutting concerns.
// Examples: validation, logging, telemetry, retries.
//
// A behavior may call next and pass the result through, transform it, or
// return its own result without calling next at all.
type Behavior func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// HandlerOf adapts a typed function into a RequestHandler.
// The request passed in must be of type P.
func HandlerOf[P any, R any](fn func(ctx context.Context, request P) (R, error)) RequestHandler {
	return HandlerFunc(func(ctx context.Context, request Request) (Response, error) {
		typed, ok := request.(P)
		if !ok {
			return nil, fmt.Errorf("handler expects %s, got %T", typeOf[P](), request)
		}
		return fn(ctx, typed)
	})
}

type voidHandlerFunc func(ctx context.Context, request Request) error

func (f voidHandlerFunc) Handle(ctx context.Context, request Request) error {
	return f(ctx, request)
}

// VoidHandlerOf adapts a typed side-effect function into a VoidRequestHandler
func VoidHandlerOf[P any](fn func(ctx context.Context, request P) error) VoidRequestHandler {
	return voidHandlerFunc(func(ctx context.Context, request Request) error {
		typed, ok := request.(P)
		if !ok {
			return fmt.Errorf("handler expects %s, got %T", typeOf[P](), request)
		}
		return fn(ctx, typed)
	})
}

type notificationHandlerFunc func(ctx context.Context, notification Notification) error

func (f notificationHandlerFunc) Handle(ctx context.Context, notification Notification) error {
	return f(ctx, notification)
}

// NotificationHandlerOf adapts a typed function into a NotificationHandler
func NotificationHandlerOf[N any](fn func(ctx context.Context, notification N) error) NotificationHandler {
	return notificationHandlerFunc(func(ctx context.Context, notification Notification) error {
		typed, ok := notification.(N)
		if !ok {
			return fmt.Errorf("handler expects %s, got %T", typeOf[N](), notification)
		}
		return fn(ctx, typed)
	})
}

// typeOf returns the reflect.Type of T, including interface types
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
