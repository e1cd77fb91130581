package navigation

import (
	"fmt"
	"math"
	"time"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// KinematicCalculator turns force balances into traversal durations.
// Every operation solves d = ½·a·t² for t = √(2d/a) under a different
// force balance. It holds no state: the same inputs always produce
// bit-identical durations.
type KinematicCalculator struct{}

// NewKinematicCalculator creates a new kinematic calculator instance
func NewKinematicCalculator() *KinematicCalculator {
	return &KinematicCalculator{}
}

// AscentTime calculates the seconds needed to climb through a body's atmosphere.
//
// Net force = launch assist + thrust − drag − weight.
//
// Returns:
//   - Duration in seconds
//   - *shared.InsufficientThrustError when the net force is ≤ 0
//   - *shared.ConfigurationError when the body is outside the drag table
func (c *KinematicCalculator) AscentTime(vehicle *fleet.Vehicle, body shared.Body) (float64, error) {
	drag, err := dragAt(vehicle, body)
	if err != nil {
		return 0, err
	}

	netForce := body.LaunchAssist() + vehicle.Thrust() - drag - vehicle.WeightOn(body)
	if netForce <= 0 {
		return 0, shared.NewInsufficientThrustError(vehicle.Name(), body.Name(), netForce)
	}

	acceleration := netForce / vehicle.Mass()
	return timeToCover(body.AtmosphereMetres(), acceleration), nil
}

// DescentTime calculates the seconds needed to land through a body's atmosphere.
//
// Net force = thrust + drag − weight. Drag helps here: it opposes the fall.
//
// Returns:
//   - Duration in seconds
//   - *shared.InsufficientDecelerationError when the net force is ≤ 0
//   - *shared.ConfigurationError when the body is outside the drag table
func (c *KinematicCalculator) DescentTime(vehicle *fleet.Vehicle, body shared.Body) (float64, error) {
	drag, err := dragAt(vehicle, body)
	if err != nil {
		return 0, err
	}

	netForce := vehicle.Thrust() + drag - vehicle.WeightOn(body)
	if netForce <= 0 {
		return 0, shared.NewInsufficientDecelerationError(vehicle.Name(), body.Name(), netForce)
	}

	acceleration := math.Abs(netForce / vehicle.Mass())
	return timeToCover(body.AtmosphereMetres(), acceleration), nil
}

// TransitTime calculates the deep-space cruise time between two bodies.
// No gravity or drag applies, so acceleration is thrust/mass and the
// operation cannot fail. It is symmetric and zero for a body to itself.
func (c *KinematicCalculator) TransitTime(vehicle *fleet.Vehicle, from, to shared.Body) float64 {
	acceleration := vehicle.Thrust() / vehicle.Mass()
	return timeToCover(from.DistanceTo(to), acceleration)
}

// LegTime calculates ascent(from) + transit(from, to) + descent(to).
// The first failure is returned; ascent is checked before descent.
func (c *KinematicCalculator) LegTime(vehicle *fleet.Vehicle, from, to shared.Body) (float64, error) {
	ascent, err := c.AscentTime(vehicle, from)
	if err != nil {
		return 0, err
	}

	transit := c.TransitTime(vehicle, from, to)

	descent, err := c.DescentTime(vehicle, to)
	if err != nil {
		return 0, err
	}

	return ascent + transit + descent, nil
}

// LegBreakdown prices a leg and keeps the three phases apart for reporting
func (c *KinematicCalculator) LegBreakdown(vehicle *fleet.Vehicle, from, to shared.Body) (*LegTiming, error) {
	ascent, err := c.AscentTime(vehicle, from)
	if err != nil {
		return nil, err
	}
	descent, err := c.DescentTime(vehicle, to)
	if err != nil {
		return nil, err
	}

	return &LegTiming{
		From:    from.Name(),
		To:      to.Name(),
		Ascent:  ascent,
		Transit: c.TransitTime(vehicle, from, to),
		Descent: descent,
	}, nil
}

// LegTiming is the per-phase split of one leg, all in seconds
type LegTiming struct {
	From    string
	To      string
	Ascent  float64
	Transit float64
	Descent float64
}

// Total returns ascent + transit + descent
func (l *LegTiming) Total() float64 {
	return l.Ascent + l.Transit + l.Descent
}

// Seconds converts float seconds into a time.Duration for display
func Seconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func dragAt(vehicle *fleet.Vehicle, body shared.Body) (float64, error) {
	drag, ok := vehicle.DragAt(body.Name())
	if !ok {
		return 0, shared.NewConfigurationError("drag table",
			fmt.Sprintf("vehicle %s has no drag entry for body %s", vehicle.Name(), body.Name()))
	}
	return drag, nil
}

// timeToCover solves d = ½·a·t² for t; a must be positive
func timeToCover(distance, acceleration float64) float64 {
	return math.Sqrt(2 * distance / acceleration)
}
