package helpers

import (
	"context"
	"errors"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// CallLog is a shared, externally observable record of handler and behavior activity
type CallLog struct {
	mu      sync.Mutex
	entries []string
}

// NewCallLog creates an empty call log
func NewCallLog() *CallLog {
	return &CallLog{}
}

// Add appends an entry
func (l *CallLog) Add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the recorded entries
func (l *CallLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.entries...)
}

// Count returns how many times entry was recorded
func (l *CallLog) Count(entry string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e == entry {
			n++
		}
	}
	return n
}

// Reset clears the log
func (l *CallLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// AnsweringHandler records name and answers with response.
// An empty failure answers normally; otherwise the handler fails with it.
func AnsweringHandler(log *CallLog, name string, response mediator.Response, failure string) mediator.RequestHandler {
	return mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		log.Add(name)
		if failure != "" {
			return nil, errors.New(failure)
		}
		return response, nil
	})
}

// SideEffectHandler records name and produces no result
func SideEffectHandler(log *CallLog, name string) mediator.VoidRequestHandler {
	return mediator.VoidHandlerOf(func(ctx context.Context, request mediator.Request) error {
		log.Add(name)
		return nil
	})
}

// RecordingNotificationHandler records name, failing with failure when it is not empty
func RecordingNotificationHandler(log *CallLog, name string, failure string) mediator.NotificationHandler {
	return mediator.NotificationHandlerOf(func(ctx context.Context, notification mediator.Notification) error {
		log.Add(name)
		if failure != "" {
			return errors.New(failure)
		}
		return nil
	})
}

// TracingBehavior records "name:before" and "name:after" around next
func TracingBehavior(log *CallLog, name string) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		log.Add(name + ":before")
		response, err := next(ctx, request)
		log.Add(name + ":after")
		return response, err
	}
}

// ShortCircuitBehavior records name and answers with response without calling next
func ShortCircuitBehavior(log *CallLog, name string, response mediator.Response) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		log.Add(name)
		return response, nil
	}
}
