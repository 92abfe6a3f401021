package config

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Mediator defaults
	if cfg.Mediator.AmbiguityPolicy == "" {
		cfg.Mediator.AmbiguityPolicy = "reject"
	}
	if cfg.Mediator.PublishStrategy == "" {
		cfg.Mediator.PublishStrategy = "sequential"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "mediator"
	}

	// Rate limit defaults
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
}
