package mediator_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

type Ping struct{ Message string }

type OneWay struct{}

type PingNotification struct{}

type Unregistered struct{}

// tableResolver resolves identities from a fixed map and counts calls
type tableResolver struct {
	mu        sync.Mutex
	instances map[mediator.HandlerIdentity]any
	resolved  []string
}

func newTableResolver() *tableResolver {
	return &tableResolver{instances: make(map[mediator.HandlerIdentity]any)}
}

func (r *tableResolver) bind(id mediator.HandlerIdentity, instance any) {
	r.instances[id] = instance
}

func (r *tableResolver) Resolve(ctx context.Context, id mediator.HandlerIdentity) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, id.Name)
	instance, ok := r.instances[id]
	if !ok {
		return nil, fmt.Errorf("no binding for %s", id.Name)
	}
	return instance, nil
}

// callLog records handler and behavior activity in order
type callLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *callLog) add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.entries...)
}

func answering(log *callLog, name string, response string) mediator.RequestHandler {
	return mediator.HandlerOf(func(ctx context.Context, p *Ping) (string, error) {
		log.add(name)
		return response, nil
	})
}

func recording(log *callLog, name string, err error) mediator.NotificationHandler {
	return mediator.NotificationHandlerOf(func(ctx context.Context, n *PingNotification) error {
		log.add(name)
		return err
	})
}

func tracing(log *callLog, name string) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		log.add(name + ":before")
		response, err := next(ctx, request)
		log.add(name + ":after")
		return response, err
	}
}
