package mediator

import "context"

// Mediator dispatches requests to their single handler and publishes
// notifications to all of theirs
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Publish(ctx context.Context, notification Notification) error
}

// mediator is the concrete implementation
type mediator struct {
	dispatcher *RequestDispatcher
	publisher  *NotificationPublisher
}

// New creates a mediator over registry and resolver
func New(registry Registry, resolver Resolver, opts ...Option) Mediator {
	return &mediator{
		dispatcher: NewRequestDispatcher(registry, resolver, opts...),
		publisher:  NewNotificationPublisher(registry, resolver, opts...),
	}
}

// Send dispatches a request to its registered handler
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	return m.dispatcher.Send(ctx, request)
}

// Publish delivers a notification to every registered handler
func (m *mediator) Publish(ctx context.Context, notification Notification) error {
	return m.publisher.Publish(ctx, notification)
}
