package config

import (
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// MediatorConfig holds dispatch policy configuration
type MediatorConfig struct {
	// What Send does with duplicate request handlers: reject, first, last
	AmbiguityPolicy string `mapstructure:"ambiguity_policy" validate:"required,oneof=reject first last"`

	// Notification fan-out: sequential, concurrent
	PublishStrategy string `mapstructure:"publish_strategy" validate:"required,oneof=sequential concurrent"`

	// Upper bound on concurrently running notification handlers (0 = unbounded)
	MaxConcurrency int `mapstructure:"max_concurrency" validate:"min=0"`

	// Per-request timeout applied by the Timeout behavior (0 = none)
	HandlerTimeout time.Duration `mapstructure:"handler_timeout" validate:"min=0"`

	// Let handler panics crash the caller instead of becoming errors
	DisablePanicRecovery bool `mapstructure:"disable_panic_recovery"`
}

// Options converts the configuration into mediator options
func (c MediatorConfig) Options() ([]mediator.Option, error) {
	policy, err := mediator.ParseAmbiguityPolicy(c.AmbiguityPolicy)
	if err != nil {
		return nil, err
	}
	strategy, err := mediator.ParsePublishStrategy(c.PublishStrategy)
	if err != nil {
		return nil, err
	}

	return []mediator.Option{
		mediator.WithAmbiguityPolicy(policy),
		mediator.WithPublishStrategy(strategy),
		mediator.WithMaxConcurrency(c.MaxConcurrency),
		mediator.WithPanicRecovery(!c.DisablePanicRecovery),
	}, nil
}
