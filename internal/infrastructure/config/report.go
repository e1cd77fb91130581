package config

import "time"

// ReportConfig holds CLI report rendering configuration
type ReportConfig struct {
	// Minimum delay between consecutive scenario reports (0 = no pacing)
	Pace time.Duration `mapstructure:"pace" validate:"min=0"`

	// Decorate feasibility tables with ✅/❌ instead of yes/no
	UseEmojis bool `mapstructure:"use_emojis"`

	// Print the per-phase breakdown of every leg of the best tour
	ShowLegs bool `mapstructure:"show_legs"`
}

// CatalogConfig holds body/vehicle catalog configuration
type CatalogConfig struct {
	// YAML catalog file; empty uses the built-in catalog
	Path string `mapstructure:"path"`

	// Preset used by commands that take a single --preset
	DefaultPreset string `mapstructure:"default_preset" validate:"required"`
}
