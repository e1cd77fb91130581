package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

type kinematicsContext struct {
	world      *World
	calculator *navigation.KinematicCalculator

	duration float64
	err      error

	legVehicle *fleet.Vehicle
	legFrom    shared.Body
	legTo      shared.Body

	ladder []*fleet.Vehicle
}

func (kc *kinematicsContext) reset() {
	kc.calculator = navigation.NewKinematicCalculator()
	kc.duration = 0
	kc.err = nil
	kc.legVehicle = nil
	kc.legFrom = shared.Body{}
	kc.legTo = shared.Body{}
	kc.ladder = nil
}

func (kc *kinematicsContext) lookup(vehicleName string, bodyNames ...string) (*fleet.Vehicle, []shared.Body, error) {
	vehicle, err := kc.world.Vehicle(vehicleName)
	if err != nil {
		return nil, nil, err
	}
	bodies, err := kc.world.Bodies(bodyNames)
	if err != nil {
		return nil, nil, err
	}
	return vehicle, bodies, nil
}

// When steps

func (kc *kinematicsContext) iComputeTheAscentTimeOfAt(vehicleName, bodyName string) error {
	vehicle, bodies, err := kc.lookup(vehicleName, bodyName)
	if err != nil {
		return err
	}
	kc.duration, kc.err = kc.calculator.AscentTime(vehicle, bodies[0])
	return nil
}

func (kc *kinematicsContext) iComputeTheDescentTimeOfAt(vehicleName, bodyName string) error {
	vehicle, bodies, err := kc.lookup(vehicleName, bodyName)
	if err != nil {
		return err
	}
	kc.duration, kc.err = kc.calculator.DescentTime(vehicle, bodies[0])
	return nil
}

func (kc *kinematicsContext) iComputeTheTransitTimeOfFromTo(vehicleName, from, to string) error {
	vehicle, bodies, err := kc.lookup(vehicleName, from, to)
	if err != nil {
		return err
	}
	kc.duration, kc.err = kc.calculator.TransitTime(vehicle, bodies[0], bodies[1]), nil
	return nil
}

func (kc *kinematicsContext) iComputeTheLegTimeOfFromTo(vehicleName, from, to string) error {
	vehicle, bodies, err := kc.lookup(vehicleName, from, to)
	if err != nil {
		return err
	}
	kc.legVehicle, kc.legFrom, kc.legTo = vehicle, bodies[0], bodies[1]
	kc.duration, kc.err = kc.calculator.LegTime(vehicle, bodies[0], bodies[1])
	return nil
}

func (kc *kinematicsContext) vehiclesWithMassAndThrusts(mass float64, thrusts string) error {
	for _, raw := range splitList(thrusts) {
		thrust, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("thrust %q is not a number", raw)
		}
		vehicle, err := newVehicle("T"+raw, mass, thrust, nil)
		if err != nil {
			return err
		}
		kc.ladder = append(kc.ladder, vehicle)
	}
	return nil
}

// Then steps

func (kc *kinematicsContext) theDurationShouldBe(expected float64) error {
	if kc.err != nil {
		return fmt.Errorf("expected a duration, got error: %v", kc.err)
	}
	if !closeTo(kc.duration, expected) {
		return fmt.Errorf("expected duration %v, got %v", expected, kc.duration)
	}
	return nil
}

func (kc *kinematicsContext) theComputationShouldSucceed() error {
	if kc.err != nil {
		return fmt.Errorf("expected success, got error: %v", kc.err)
	}
	if kc.duration <= 0 {
		return fmt.Errorf("expected a positive duration, got %v", kc.duration)
	}
	return nil
}

func (kc *kinematicsContext) theComputationShouldFailWithAnInsufficientThrustError() error {
	var thrustErr *shared.InsufficientThrustError
	if !errors.As(kc.err, &thrustErr) {
		return fmt.Errorf("expected InsufficientThrustError, got %v", kc.err)
	}
	return nil
}

func (kc *kinematicsContext) theComputationShouldFailWithAnInsufficientDecelerationError() error {
	var decelErr *shared.InsufficientDecelerationError
	if !errors.As(kc.err, &decelErr) {
		return fmt.Errorf("expected InsufficientDecelerationError, got %v", kc.err)
	}
	return nil
}

func (kc *kinematicsContext) theTransitTimeOfFromToShouldBe(vehicleName, from, to string, expected float64) error {
	vehicle, bodies, err := kc.lookup(vehicleName, from, to)
	if err != nil {
		return err
	}
	actual := kc.calculator.TransitTime(vehicle, bodies[0], bodies[1])
	if !closeTo(actual, expected) {
		return fmt.Errorf("expected transit %v, got %v", expected, actual)
	}
	return nil
}

func (kc *kinematicsContext) theirAscentTimesAtShouldIncreaseWithFallingThrust(bodyName string) error {
	body, err := kc.world.Body(bodyName)
	if err != nil {
		return err
	}

	previous := 0.0
	flown := 0
	for _, vehicle := range kc.ladder {
		duration, err := kc.calculator.AscentTime(vehicle, body)
		if err != nil {
			break
		}
		if duration <= previous {
			return fmt.Errorf("ascent time of %s (%v) did not increase over %v", vehicle.Name(), duration, previous)
		}
		previous = duration
		flown++
	}
	if flown < 2 {
		return fmt.Errorf("expected at least two vehicles to lift off, got %d", flown)
	}
	return nil
}

func (kc *kinematicsContext) theWeakestOfThemShouldFailWithAnInsufficientThrustError() error {
	if len(kc.ladder) == 0 {
		return fmt.Errorf("no vehicles declared")
	}
	weakest := kc.ladder[len(kc.ladder)-1]
	body, err := kc.world.Body(shared.Earth)
	if err != nil {
		return err
	}
	_, kc.err = kc.calculator.AscentTime(weakest, body)
	return kc.theComputationShouldFailWithAnInsufficientThrustError()
}

func (kc *kinematicsContext) theLegTimeShouldEqualAscentAtPlusTransitPlusDescentAt(from, to string) error {
	if kc.err != nil {
		return fmt.Errorf("expected a leg time, got error: %v", kc.err)
	}
	if kc.legFrom.Name() != from || kc.legTo.Name() != to {
		return fmt.Errorf("last leg was %s → %s", kc.legFrom.Name(), kc.legTo.Name())
	}

	ascent, err := kc.calculator.AscentTime(kc.legVehicle, kc.legFrom)
	if err != nil {
		return err
	}
	transit := kc.calculator.TransitTime(kc.legVehicle, kc.legFrom, kc.legTo)
	descent, err := kc.calculator.DescentTime(kc.legVehicle, kc.legTo)
	if err != nil {
		return err
	}

	if expected := ascent + transit + descent; kc.duration != expected {
		return fmt.Errorf("expected leg time %v, got %v", expected, kc.duration)
	}
	return nil
}

func (kc *kinematicsContext) computingItAgainShouldGiveABitIdenticalResult() error {
	again, err := kc.calculator.LegTime(kc.legVehicle, kc.legFrom, kc.legTo)
	if err != nil {
		return err
	}
	if again != kc.duration {
		return fmt.Errorf("leg time changed from %v to %v", kc.duration, again)
	}
	return nil
}

// InitializeKinematicsScenario registers cost model steps
func InitializeKinematicsScenario(ctx *godog.ScenarioContext, world *World) {
	kc := &kinematicsContext{world: world}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		kc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^vehicles with mass (\d+(?:\.\d+)?) kg and thrusts ([\d., and]+) N$`, kc.vehiclesWithMassAndThrusts)

	// When steps
	ctx.Step(`^I compute the ascent time of "([^"]*)" at "([^"]*)"$`, kc.iComputeTheAscentTimeOfAt)
	ctx.Step(`^I compute the descent time of "([^"]*)" at "([^"]*)"$`, kc.iComputeTheDescentTimeOfAt)
	ctx.Step(`^I compute the transit time of "([^"]*)" from "([^"]*)" to "([^"]*)"$`, kc.iComputeTheTransitTimeOfFromTo)
	ctx.Step(`^I compute the leg time of "([^"]*)" from "([^"]*)" to "([^"]*)"$`, kc.iComputeTheLegTimeOfFromTo)

	// Then steps
	ctx.Step(`^the duration should be (\d+(?:\.\d+)?) seconds$`, kc.theDurationShouldBe)
	ctx.Step(`^the computation should succeed$`, kc.theComputationShouldSucceed)
	ctx.Step(`^the computation should fail with an insufficient thrust error$`, kc.theComputationShouldFailWithAnInsufficientThrustError)
	ctx.Step(`^the computation should fail with an insufficient deceleration error$`, kc.theComputationShouldFailWithAnInsufficientDecelerationError)
	ctx.Step(`^the transit time of "([^"]*)" from "([^"]*)" to "([^"]*)" should be (\d+(?:\.\d+)?) seconds$`, kc.theTransitTimeOfFromToShouldBe)
	ctx.Step(`^their ascent times at "([^"]*)" should increase with falling thrust$`, kc.theirAscentTimesAtShouldIncreaseWithFallingThrust)
	ctx.Step(`^the weakest of them should fail with an insufficient thrust error$`, kc.theWeakestOfThemShouldFailWithAnInsufficientThrustError)
	ctx.Step(`^the leg time should equal ascent at "([^"]*)" plus transit plus descent at "([^"]*)"$`, kc.theLegTimeShouldEqualAscentAtPlusTransitPlusDescentAt)
	ctx.Step(`^computing it again should give a bit-identical result$`, kc.computingItAgainShouldGiveABitIdenticalResult)
}
