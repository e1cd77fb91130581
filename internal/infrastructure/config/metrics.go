package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`

	// TextfilePath receives a Prometheus text-format dump after each run (empty = none)
	TextfilePath string `mapstructure:"textfile_path"`
}
