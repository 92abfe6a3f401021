package mediator

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/andrescamacho/mediator-go/internal/application/logging"
)

// RequestDispatcher sends each request to exactly one handler
type RequestDispatcher struct {
	registry      Registry
	resolver      Resolver
	pipeline      *Pipeline
	ambiguity     AmbiguityPolicy
	recoverPanics bool
}

// NewRequestDispatcher creates a dispatcher reading handlers from registry
func NewRequestDispatcher(registry Registry, resolver Resolver, opts ...Option) *RequestDispatcher {
	o := buildOptions(opts)
	return &RequestDispatcher{
		registry:      registry,
		resolver:      resolver,
		pipeline:      o.pipeline,
		ambiguity:     o.ambiguity,
		recoverPanics: o.recoverPanics,
	}
}

// Send dispatches a request to its registered handler through the pipeline
func (d *RequestDispatcher) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, ErrNilRequest
	}

	payloadType := reflect.TypeOf(request)
	identity, err := d.selectHandler(ctx, payloadType)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Resolution runs under the same panic recovery as the pipeline
	return d.run(ctx, func(ctx context.Context, request Request) (Response, error) {
		handle, err := resolveRequest(ctx, d.resolver, identity)
		if err != nil {
			return nil, err
		}

		terminal := func(ctx context.Context, request Request) (Response, error) {
			// Nothing has been invoked yet; a cancelled context stops here
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return handle(ctx, request)
		}

		return d.pipeline.Wrap(payloadType, terminal)(ctx, request)
	}, request)
}

// selectHandler applies the ambiguity policy to the registered request handlers
func (d *RequestDispatcher) selectHandler(ctx context.Context, payloadType reflect.Type) (HandlerIdentity, error) {
	var candidates []HandlerIdentity
	for _, id := range d.registry.Lookup(payloadType) {
		if id.Capability.IsRequest() {
			candidates = append(candidates, id)
		}
	}

	switch {
	case len(candidates) == 0:
		return HandlerIdentity{}, &NoHandlerError{PayloadType: payloadType}
	case len(candidates) == 1:
		return candidates[0], nil
	}

	var chosen HandlerIdentity
	switch d.ambiguity {
	case AmbiguityFirstRegistered:
		chosen = candidates[0]
	case AmbiguityLastRegistered:
		chosen = candidates[len(candidates)-1]
	default:
		return HandlerIdentity{}, &AmbiguousHandlerError{
			PayloadType:    payloadType,
			CandidateCount: len(candidates),
			Candidates:     candidates,
		}
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelWarning,
		fmt.Sprintf("[Mediator] %d handlers registered for %s, policy %q selected %s",
			len(candidates), payloadType, d.ambiguity, chosen.Name),
		map[string]interface{}{
			"payload_type":    payloadType.String(),
			"candidate_count": len(candidates),
			"selected":        chosen.Name,
		})
	return chosen, nil
}

func (d *RequestDispatcher) run(ctx context.Context, fn HandlerFunc, request Request) (response Response, err error) {
	if d.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				response = nil
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
	}
	return fn(ctx, request)
}

// Sender is the request half of Mediator
type Sender interface {
	Send(ctx context.Context, request Request) (Response, error)
}

// Send dispatches request and converts the response to R
func Send[R any](ctx context.Context, s Sender, request Request) (R, error) {
	var zero R
	response, err := s.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	if response == nil {
		return zero, nil
	}
	typed, ok := response.(R)
	if !ok {
		return zero, &ResponseTypeError{Expected: typeOf[R](), Actual: reflect.TypeOf(response)}
	}
	return typed, nil
}
