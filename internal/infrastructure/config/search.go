package config

import "time"

// SearchConfig holds exhaustive tour search configuration
type SearchConfig struct {
	// Body every tour starts and ends at
	StartBody string `mapstructure:"start_body" validate:"required,canonical_body"`

	// Largest body count searched before failing fast; 12 bodies is 11! tours
	MaxBodies int `mapstructure:"max_bodies" validate:"min=1,max=12"`

	// Parallel workers per vehicle search (1 = serial)
	Workers int `mapstructure:"workers" validate:"min=1,max=64"`

	// Upper bound for one scenario run (0 = no limit)
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}
