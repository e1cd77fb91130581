package navigation_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
	"github.com/koussay97/space-travel-TSP/test/helpers"
)

// closedForm solves d = ½·a·t² for t
func closedForm(distance, netForce, mass float64) float64 {
	return math.Sqrt(2 * distance / (netForce / mass))
}

func TestAscentTime_EarthFalcon9(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	earth := helpers.EarthAndMars(t)[0]
	net := helpers.EarthAssist + helpers.Falcon9Thrust - helpers.Falcon9Earth - helpers.Falcon9Mass*helpers.EarthGravity

	// Act
	seconds, err := calc.AscentTime(vehicle, earth)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, closedForm(100e3, net, helpers.Falcon9Mass), seconds, 1e-9)
}

func TestDescentTime_MarsFalcon9(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	mars := helpers.EarthAndMars(t)[1]
	net := helpers.Falcon9Thrust + helpers.Falcon9Mars - helpers.Falcon9Mass*helpers.MarsGravity

	// Act
	seconds, err := calc.DescentTime(vehicle, mars)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, closedForm(125e3, net, helpers.Falcon9Mass), seconds, 1e-9)
}

func TestDescentTime_IgnoresLaunchAssist(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	plain := helpers.NewBody(t, shared.Mars, helpers.MarsGravity, helpers.MarsDistance, helpers.MarsAtmosphere, 0)
	boosted := helpers.NewBody(t, shared.Mars, helpers.MarsGravity, helpers.MarsDistance, helpers.MarsAtmosphere, 1e6)

	// Act
	a, errA := calc.DescentTime(vehicle, plain)
	b, errB := calc.DescentTime(vehicle, boosted)

	// Assert
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestTransitTime_SymmetricAndZeroForSameBody(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	bodies := []shared.Body{
		helpers.NewBody(t, shared.Sun, 274, 0, 0, 0),
		helpers.NewBody(t, shared.Earth, 9.81, 149.6, 100, 0),
		helpers.NewBody(t, shared.Mars, 3.71, 227.9, 125, 0),
		helpers.NewBody(t, shared.Pluto, 0.62, 5906, 50, 0),
	}

	for _, a := range bodies {
		// Act & Assert
		assert.Zero(t, calc.TransitTime(vehicle, a, a), "transit %s → %s", a.Name(), a.Name())
		for _, b := range bodies {
			assert.Equal(t, calc.TransitTime(vehicle, a, b), calc.TransitTime(vehicle, b, a),
				"transit %s ↔ %s", a.Name(), b.Name())
		}
	}
}

func TestTransitTime_EarthMars(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	bodies := helpers.EarthAndMars(t)
	distance := math.Abs(helpers.EarthDistance-helpers.MarsDistance) * 1e9

	// Act
	seconds := calc.TransitTime(vehicle, bodies[0], bodies[1])

	// Assert
	assert.InDelta(t, math.Sqrt(2*distance/(helpers.Falcon9Thrust/helpers.Falcon9Mass)), seconds, 1e-6)
}

func TestAscentTime_StrictlyDecreasesWithThrust(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	earth := helpers.EarthAndMars(t)[0]
	previous := math.Inf(1)

	for thrust := 10000.0; thrust <= 1e6; thrust *= 2 {
		vehicle := helpers.NewVehicle(t, "probe", 500, thrust, nil)

		// Act
		seconds, err := calc.AscentTime(vehicle, earth)

		// Assert
		require.NoError(t, err)
		assert.Less(t, seconds, previous, "thrust %.0f", thrust)
		previous = seconds
	}
}

func TestAscentTime_ThrustTowardBoundaryEventuallyFails(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	earth := helpers.NewBody(t, shared.Earth, 9.81, 149.6, 100, 0)
	weight := 500 * 9.81

	var err error
	for thrust := 2 * weight; thrust > 0; thrust -= weight / 8 {
		vehicle := helpers.NewVehicle(t, "probe", 500, thrust, nil)

		// Act
		_, err = calc.AscentTime(vehicle, earth)
		if err != nil {
			break
		}
	}

	// Assert
	var thrustErr *shared.InsufficientThrustError
	require.True(t, errors.As(err, &thrustErr), "expected InsufficientThrustError, got %v", err)
	assert.LessOrEqual(t, thrustErr.NetForce, 0.0)
}

func TestAscentTime_ZeroNetForceFailsAndEpsilonSucceeds(t *testing.T) {
	// Arrange: weight is exactly 100 kg × 10 m/s² = 1000 N
	calc := navigation.NewKinematicCalculator()
	body := helpers.NewBody(t, shared.Earth, 10, 0, 100, 0)
	balanced := helpers.NewVehicle(t, "balanced", 100, 1000, nil)
	nudged := helpers.NewVehicle(t, "nudged", 100, 1000.5, nil)

	// Act
	_, zeroErr := calc.AscentTime(balanced, body)
	seconds, epsErr := calc.AscentTime(nudged, body)

	// Assert
	var thrustErr *shared.InsufficientThrustError
	require.True(t, errors.As(zeroErr, &thrustErr))
	assert.Equal(t, 0.0, thrustErr.NetForce)
	require.NoError(t, epsErr)
	assert.False(t, math.IsInf(seconds, 0))
	assert.InDelta(t, math.Sqrt(2*100e3/(0.5/100)), seconds, 1e-6)
}

func TestDescentTime_ZeroNetForceFailsAndEpsilonSucceeds(t *testing.T) {
	// Arrange: drag 200 N plus thrust 800 N balances 1000 N of weight
	calc := navigation.NewKinematicCalculator()
	body := helpers.NewBody(t, shared.Earth, 10, 0, 100, 5000)
	balanced := helpers.NewVehicle(t, "balanced", 100, 800, map[string]float64{shared.Earth: 200})
	nudged := helpers.NewVehicle(t, "nudged", 100, 800.25, map[string]float64{shared.Earth: 200})

	// Act
	_, zeroErr := calc.DescentTime(balanced, body)
	seconds, epsErr := calc.DescentTime(nudged, body)

	// Assert
	var decelErr *shared.InsufficientDecelerationError
	require.True(t, errors.As(zeroErr, &decelErr))
	assert.True(t, shared.IsInfeasible(zeroErr))
	require.NoError(t, epsErr)
	assert.Greater(t, seconds, 0.0)
	assert.False(t, math.IsInf(seconds, 0))
}

func TestLegTime_ChecksAscentBeforeDescent(t *testing.T) {
	// Arrange: cannot leave Jupiter and cannot land on the Sun
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.NewVehicle(t, "weak", 100, 1000, nil)
	jupiter := helpers.NewBody(t, shared.Jupiter, 24.79, 778.5, 5000, 0)
	sun := helpers.NewBody(t, shared.Sun, 274, 0, 0, 0)

	// Act
	_, err := calc.LegTime(vehicle, jupiter, sun)

	// Assert
	var thrustErr *shared.InsufficientThrustError
	require.True(t, errors.As(err, &thrustErr))
	assert.Equal(t, shared.Jupiter, thrustErr.Body)
}

func TestLegTime_SumsThreePhases(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	bodies := helpers.EarthAndMars(t)

	ascent, err := calc.AscentTime(vehicle, bodies[0])
	require.NoError(t, err)
	descent, err := calc.DescentTime(vehicle, bodies[1])
	require.NoError(t, err)
	transit := calc.TransitTime(vehicle, bodies[0], bodies[1])

	// Act
	leg, err := calc.LegTime(vehicle, bodies[0], bodies[1])
	breakdown, breakdownErr := calc.LegBreakdown(vehicle, bodies[0], bodies[1])

	// Assert
	require.NoError(t, err)
	require.NoError(t, breakdownErr)
	assert.Equal(t, ascent+transit+descent, leg)
	assert.Equal(t, leg, breakdown.Total())
	assert.Equal(t, shared.Earth, breakdown.From)
	assert.Equal(t, shared.Mars, breakdown.To)
}

func TestCostModel_IsIdempotent(t *testing.T) {
	// Arrange
	calc := navigation.NewKinematicCalculator()
	vehicle := helpers.Falcon9(t)
	bodies := helpers.EarthAndMars(t)

	// Act
	first, err1 := calc.LegTime(vehicle, bodies[0], bodies[1])
	second, err2 := calc.LegTime(vehicle, bodies[0], bodies[1])
	other, err3 := navigation.NewKinematicCalculator().LegTime(vehicle, bodies[0], bodies[1])

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NoError(t, err3)
	assert.Equal(t, math.Float64bits(first), math.Float64bits(second))
	assert.Equal(t, math.Float64bits(first), math.Float64bits(other))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, navigation.Seconds(1.5))
}
