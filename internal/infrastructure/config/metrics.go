package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// RateLimitConfig holds the request rate limiter configuration
type RateLimitConfig struct {
	// Enabled adds the RateLimit behavior to the pipeline
	Enabled bool `mapstructure:"enabled"`

	// Sustained requests per second
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`

	// Maximum burst size
	Burst int `mapstructure:"burst" validate:"min=1"`
}
