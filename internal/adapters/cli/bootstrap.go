package cli

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/mediator-go/internal/adapters/metrics"
	"github.com/andrescamacho/mediator-go/internal/application/behaviors"
	"github.com/andrescamacho/mediator-go/internal/application/demo"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/resolver"
)

// App is a fully wired mediator plus the demo state it dispatches into
type App struct {
	Mediator mediator.Mediator
	Registry mediator.Registry
	Module   *demo.Module
}

// Bootstrap registers the demo handlers and builds the mediator from cfg.
//
// The pipeline order is Correlation, Logging, metrics, rate limit, timeout,
// then Validation closest to the handler.
func Bootstrap(cfg *config.Config) (*App, error) {
	binder := resolver.NewBinder()
	module := demo.NewModule()
	if err := module.Register(binder); err != nil {
		return nil, err
	}

	pipeline := mediator.NewPipeline(
		behaviors.Correlation(),
		behaviors.Logging(),
	)

	opts, err := cfg.Mediator.Options()
	if err != nil {
		return nil, fmt.Errorf("invalid mediator configuration: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		requests := metrics.NewRequestMetricsCollector(cfg.Metrics.Namespace)
		if err := requests.Register(); err != nil {
			return nil, fmt.Errorf("failed to register request metrics: %w", err)
		}
		pipeline.Use(metrics.PrometheusMiddleware(requests))

		notifications := metrics.NewNotificationMetricsCollector(cfg.Metrics.Namespace)
		if err := notifications.Register(); err != nil {
			return nil, fmt.Errorf("failed to register notification metrics: %w", err)
		}
		opts = append(opts, mediator.WithHandlerObserver(notifications))
	}

	if cfg.RateLimit.Enabled {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		pipeline.Use(behaviors.RateLimit(limiter))
	}

	if cfg.Mediator.HandlerTimeout > 0 {
		pipeline.Use(behaviors.Timeout(cfg.Mediator.HandlerTimeout))
	}

	pipeline.Use(behaviors.Validation(validator.New()))

	opts = append(opts, mediator.WithPipeline(pipeline))

	return &App{
		Mediator: mediator.New(binder.Registry, binder.Container, opts...),
		Registry: binder.Registry,
		Module:   module,
	}, nil
}

// loadConfig loads the configuration selected by the --config flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}
