package mediator

import (
	"context"
	"reflect"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// HandlerObserver is told the outcome of every notification handler run
type HandlerObserver interface {
	ObserveHandler(identity HandlerIdentity, duration time.Duration, err error)
}

// NotificationPublisher fans a notification out to every registered handler
type NotificationPublisher struct {
	registry       Registry
	resolver       Resolver
	strategy       PublishStrategy
	maxConcurrency int
	observer       HandlerObserver
	recoverPanics  bool
}

// NewNotificationPublisher creates a publisher reading handlers from registry
func NewNotificationPublisher(registry Registry, resolver Resolver, opts ...Option) *NotificationPublisher {
	o := buildOptions(opts)
	return &NotificationPublisher{
		registry:       registry,
		resolver:       resolver,
		strategy:       o.strategy,
		maxConcurrency: o.maxConcurrency,
		observer:       o.observer,
		recoverPanics:  o.recoverPanics,
	}
}

// Publish invokes every handler of the notification's type. A failing
// handler never stops its siblings; all failures come back together in an
// *AggregateNotificationError.
func (p *NotificationPublisher) Publish(ctx context.Context, notification Notification) error {
	if notification == nil {
		return ErrNilRequest
	}

	payloadType := reflect.TypeOf(notification)
	var handlers []HandlerIdentity
	for _, id := range p.registry.Lookup(payloadType) {
		if id.Capability == CapabilityNotification {
			handlers = append(handlers, id)
		}
	}
	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	if p.strategy == PublishConcurrent {
		errs = p.publishConcurrent(ctx, handlers, notification)
	} else {
		errs = p.publishSequential(ctx, handlers, notification)
	}

	var failures []HandlerFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, HandlerFailure{Identity: handlers[i], Err: err})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &AggregateNotificationError{PayloadType: payloadType, Failures: failures}
}

func (p *NotificationPublisher) publishSequential(ctx context.Context, handlers []HandlerIdentity, notification Notification) []error {
	errs := make([]error, len(handlers))
	for i, id := range handlers {
		if err := ctx.Err(); err != nil {
			// Handlers not yet started are reported, not silently dropped
			for j := i; j < len(handlers); j++ {
				errs[j] = err
			}
			break
		}
		errs[i] = p.invoke(ctx, id, notification)
	}
	return errs
}

func (p *NotificationPublisher) publishConcurrent(ctx context.Context, handlers []HandlerIdentity, notification Notification) []error {
	errs := make([]error, len(handlers))

	var sem *semaphore.Weighted
	if p.maxConcurrency > 0 {
		sem = semaphore.NewWeighted(int64(p.maxConcurrency))
	}

	var wg sync.WaitGroup
	for i, id := range handlers {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(handlers); j++ {
				errs[j] = err
			}
			break
		}
		if sem != nil {
			if err := sem.Acquire(ctx, 1); err != nil {
				for j := i; j < len(handlers); j++ {
					errs[j] = err
				}
				break
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem != nil {
				defer sem.Release(1)
			}
			errs[i] = p.invoke(ctx, id, notification)
		}()
	}
	wg.Wait()

	return errs
}

// invoke resolves and runs one handler, timing it for the observer
func (p *NotificationPublisher) invoke(ctx context.Context, id HandlerIdentity, notification Notification) (err error) {
	start := time.Now()
	defer func() {
		if p.observer != nil {
			p.observer.ObserveHandler(id, time.Since(start), err)
		}
	}()

	if p.recoverPanics {
		// Runs before the observer defer, so the observer sees the *PanicError
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
	}

	handler, err := resolveNotification(ctx, p.resolver, id)
	if err != nil {
		return err
	}
	return handler.Handle(ctx, notification)
}
