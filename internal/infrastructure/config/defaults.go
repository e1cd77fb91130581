package config

// SetDefaults sets default values for all zero-valued configuration fields.
// Booleans and report pacing are left alone: their zero value is meaningful.
func SetDefaults(cfg *Config) {
	// Search defaults
	if cfg.Search.StartBody == "" {
		cfg.Search.StartBody = "Earth"
	}
	if cfg.Search.MaxBodies == 0 {
		cfg.Search.MaxBodies = 11
	}
	if cfg.Search.Workers == 0 {
		cfg.Search.Workers = 1
	}

	// Catalog defaults
	if cfg.Catalog.DefaultPreset == "" {
		cfg.Catalog.DefaultPreset = "realistic"
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
		cfg.Metrics.Namespace = "spacetour"
	}
}
