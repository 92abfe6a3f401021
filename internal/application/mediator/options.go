package mediator

import "fmt"

// AmbiguityPolicy decides what Send does when several request handlers
// are registered for the same payload type
type AmbiguityPolicy int

const (
	// AmbiguityReject fails with *AmbiguousHandlerError
	AmbiguityReject AmbiguityPolicy = iota
	// AmbiguityFirstRegistered dispatches to the earliest registration
	AmbiguityFirstRegistered
	// AmbiguityLastRegistered dispatches to the latest registration, the
	// tie-break most DI containers apply implicitly
	AmbiguityLastRegistered
)

func (p AmbiguityPolicy) String() string {
	switch p {
	case AmbiguityReject:
		return "reject"
	case AmbiguityFirstRegistered:
		return "first"
	case AmbiguityLastRegistered:
		return "last"
	default:
		return fmt.Sprintf("AmbiguityPolicy(%d)", int(p))
	}
}

// ParseAmbiguityPolicy parses "reject", "first" or "last"
func ParseAmbiguityPolicy(s string) (AmbiguityPolicy, error) {
	switch s {
	case "", "reject":
		return AmbiguityReject, nil
	case "first":
		return AmbiguityFirstRegistered, nil
	case "last":
		return AmbiguityLastRegistered, nil
	}
	return AmbiguityReject, fmt.Errorf("unknown ambiguity policy %q", s)
}

// PublishStrategy decides how Publish runs the handlers of a notification
type PublishStrategy int

const (
	// PublishSequential starts handlers one after another in registration order
	PublishSequential PublishStrategy = iota
	// PublishConcurrent starts all handlers at once
	PublishConcurrent
)

func (s PublishStrategy) String() string {
	switch s {
	case PublishSequential:
		return "sequential"
	case PublishConcurrent:
		return "concurrent"
	default:
		return fmt.Sprintf("PublishStrategy(%d)", int(s))
	}
}

// ParsePublishStrategy parses "sequential" or "concurrent"
func ParsePublishStrategy(s string) (PublishStrategy, error) {
	switch s {
	case "", "sequential":
		return PublishSequential, nil
	case "concurrent":
		return PublishConcurrent, nil
	}
	return PublishSequential, fmt.Errorf("unknown publish strategy %q", s)
}

type options struct {
	pipeline       *Pipeline
	ambiguity      AmbiguityPolicy
	strategy       PublishStrategy
	maxConcurrency int
	observer       HandlerObserver
	recoverPanics  bool
}

func defaultOptions() options {
	return options{
		ambiguity:     AmbiguityReject,
		strategy:      PublishSequential,
		recoverPanics: true,
	}
}

// Option configures a Mediator, RequestDispatcher or NotificationPublisher
type Option func(*options)

// WithPipeline sets the behaviors wrapped around request handlers
func WithPipeline(p *Pipeline) Option {
	return func(o *options) {
		o.pipeline = p
	}
}

// WithAmbiguityPolicy opts into a tie-break for duplicate request handlers
func WithAmbiguityPolicy(p AmbiguityPolicy) Option {
	return func(o *options) {
		o.ambiguity = p
	}
}

// WithPublishStrategy selects sequential or concurrent notification fan-out
func WithPublishStrategy(s PublishStrategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMaxConcurrency bounds concurrent fan-out; zero or less means unbounded
func WithMaxConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

// WithHandlerObserver reports every notification handler outcome to obs
func WithHandlerObserver(obs HandlerObserver) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithPanicRecovery controls whether handler panics become *PanicError
func WithPanicRecovery(enabled bool) Option {
	return func(o *options) {
		o.recoverPanics = enabled
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
