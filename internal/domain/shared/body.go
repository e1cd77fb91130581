package shared

import (
	"fmt"
	"math"
)

const (
	// KilometresToMetres converts atmosphere thickness to base length units
	KilometresToMetres = 1e3
	// MillionKilometresToMetres converts orbital distance to base length units
	MillionKilometresToMetres = 1e9
)

// Canonical body names. Every vehicle drag table is keyed by exactly this set.
const (
	Sun     = "Sun"
	Mercury = "Mercury"
	Venus   = "Venus"
	Earth   = "Earth"
	Mars    = "Mars"
	Jupiter = "Jupiter"
	Saturn  = "Saturn"
	Uranus  = "Uranus"
	Neptune = "Neptune"
	Pluto   = "Pluto"
)

var canonicalBodyNames = []string{
	Sun, Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
}

var canonicalBodySet = func() map[string]bool {
	set := make(map[string]bool, len(canonicalBodyNames))
	for _, name := range canonicalBodyNames {
		set[name] = true
	}
	return set
}()

// CanonicalBodyNames returns the fixed body set in registry order
func CanonicalBodyNames() []string {
	names := make([]string, len(canonicalBodyNames))
	copy(names, canonicalBodyNames)
	return names
}

// IsCanonicalBodyName checks if name belongs to the fixed body set
func IsCanonicalBodyName(name string) bool {
	return canonicalBodySet[name]
}

// Body represents the immutable physical constants of one celestial body.
//
// Invariants:
// - Name is a canonical body name
// - Gravity is strictly positive
// - Distance, atmosphere thickness and launch assist are non-negative
// - All values are finite
//
// Identity is scenario-scoped: the same body name may appear in several
// booster scenarios with different launch-assist forces.
type Body struct {
	name         string
	gravity      float64 // m/s²
	distance     float64 // million km from the reference origin
	atmosphere   float64 // km of atmosphere to traverse
	launchAssist float64 // N contributed by the ground station at launch
}

// NewBody creates a new body with validation
func NewBody(name string, gravity, distance, atmosphere, launchAssist float64) (Body, error) {
	if name == "" {
		return Body{}, NewConfigurationError("body name", "cannot be empty")
	}
	if !IsCanonicalBodyName(name) {
		return Body{}, NewConfigurationError("body name", fmt.Sprintf("unknown body %q", name))
	}

	fields := []struct {
		field string
		value float64
	}{
		{"gravity", gravity},
		{"distance", distance},
		{"atmosphere thickness", atmosphere},
		{"launch assist", launchAssist},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return Body{}, NewConfigurationError(f.field, fmt.Sprintf("%s must be finite", name))
		}
		if f.value < 0 {
			return Body{}, NewConfigurationError(f.field, fmt.Sprintf("%s cannot be negative", name))
		}
	}
	if gravity == 0 {
		return Body{}, NewConfigurationError("gravity", fmt.Sprintf("%s must be positive", name))
	}

	return Body{
		name:         name,
		gravity:      gravity,
		distance:     distance,
		atmosphere:   atmosphere,
		launchAssist: launchAssist,
	}, nil
}

// MustNewBody is NewBody for static tables; it panics on invalid constants
func MustNewBody(name string, gravity, distance, atmosphere, launchAssist float64) Body {
	body, err := NewBody(name, gravity, distance, atmosphere, launchAssist)
	if err != nil {
		panic(err)
	}
	return body
}

// WithLaunchAssist returns a copy of the body with another ground-station force
func (b Body) WithLaunchAssist(launchAssist float64) (Body, error) {
	return NewBody(b.name, b.gravity, b.distance, b.atmosphere, launchAssist)
}

func (b Body) Name() string {
	return b.name
}

func (b Body) Gravity() float64 {
	return b.gravity
}

func (b Body) Distance() float64 {
	return b.distance
}

func (b Body) AtmosphereThickness() float64 {
	return b.atmosphere
}

func (b Body) LaunchAssist() float64 {
	return b.launchAssist
}

// AtmosphereMetres returns the atmosphere thickness in base length units
func (b Body) AtmosphereMetres() float64 {
	return b.atmosphere * KilometresToMetres
}

// DistanceTo returns the straight-line separation to another body in metres
func (b Body) DistanceTo(other Body) float64 {
	return math.Abs(b.distance-other.distance) * MillionKilometresToMetres
}

// IsZero reports whether the body was never constructed
func (b Body) IsZero() bool {
	return b.name == ""
}

func (b Body) String() string {
	return fmt.Sprintf("Body(%s)", b.name)
}

// BodyNames extracts names preserving order
func BodyNames(bodies []Body) []string {
	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = b.name
	}
	return names
}

// FindBody returns the index of the named body or -1
func FindBody(bodies []Body, name string) int {
	for i, b := range bodies {
		if b.name == name {
			return i
		}
	}
	return -1
}
