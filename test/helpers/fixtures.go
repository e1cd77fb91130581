package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// Scenario constants used across unit and BDD tests.
// Earth and Mars carry the realistic booster preset.
const (
	EarthGravity    = 9.81
	EarthDistance   = 149.6
	EarthAtmosphere = 100.0
	EarthAssist     = 3000.0

	MarsGravity    = 3.71
	MarsDistance   = 227.9
	MarsAtmosphere = 125.0
	MarsAssist     = 3500.0

	Falcon9Mass   = 470.0
	Falcon9Thrust = 845000.0
	Falcon9Earth  = 658.6
	Falcon9Mars   = 10.75
)

// NewBody builds a body or fails the test
func NewBody(t testing.TB, name string, gravity, distance, atmosphere, launchAssist float64) shared.Body {
	t.Helper()
	body, err := shared.NewBody(name, gravity, distance, atmosphere, launchAssist)
	require.NoError(t, err)
	return body
}

// EarthAndMars returns the two-body scenario in that order
func EarthAndMars(t testing.TB) []shared.Body {
	t.Helper()
	return []shared.Body{
		NewBody(t, shared.Earth, EarthGravity, EarthDistance, EarthAtmosphere, EarthAssist),
		NewBody(t, shared.Mars, MarsGravity, MarsDistance, MarsAtmosphere, MarsAssist),
	}
}

// UniformDrag returns a complete drag table with the same force at every body
func UniformDrag(force float64) map[string]float64 {
	drag := make(map[string]float64)
	for _, name := range shared.CanonicalBodyNames() {
		drag[name] = force
	}
	return drag
}

// NewVehicle builds a vehicle whose drag is zero except where overridden
func NewVehicle(t testing.TB, name string, mass, thrust float64, overrides map[string]float64) *fleet.Vehicle {
	t.Helper()
	drag := UniformDrag(0)
	for body, force := range overrides {
		drag[body] = force
	}
	vehicle, err := fleet.NewVehicle(name, mass, thrust, drag)
	require.NoError(t, err)
	return vehicle
}

// Falcon9 returns the SpaceX Merlin 1D vehicle with its Earth and Mars drag
func Falcon9(t testing.TB) *fleet.Vehicle {
	t.Helper()
	return NewVehicle(t, "SpaceX Merlin 1D (Falcon 9)", Falcon9Mass, Falcon9Thrust, map[string]float64{
		shared.Earth: Falcon9Earth,
		shared.Mars:  Falcon9Mars,
	})
}
