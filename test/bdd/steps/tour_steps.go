package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

type tourContext struct {
	world      *World
	calculator *navigation.KinematicCalculator
	maxBodies  int

	vehicle string
	bodies  []shared.Body
	start   string

	tour *routing.Tour
	err  error
}

func (tc *tourContext) reset() {
	tc.calculator = navigation.NewKinematicCalculator()
	tc.maxBodies = routing.DefaultMaxBodies
	tc.vehicle = ""
	tc.bodies = nil
	tc.start = ""
	tc.tour = nil
	tc.err = nil
}

func (tc *tourContext) plan(workers int) (*routing.Tour, error) {
	vehicle, err := tc.world.Vehicle(tc.vehicle)
	if err != nil {
		return nil, err
	}
	optimizer := routing.NewTourOptimizer(tc.calculator, routing.Options{MaxBodies: tc.maxBodies, Workers: workers})
	return optimizer.OptimizeTour(context.Background(), &routing.TourRequest{
		Vehicle:   vehicle,
		Bodies:    tc.bodies,
		StartBody: tc.start,
	})
}

func (tc *tourContext) requireTour() error {
	if tc.err != nil {
		return fmt.Errorf("planning failed: %v", tc.err)
	}
	if tc.tour == nil {
		return fmt.Errorf("no tour was planned")
	}
	return nil
}

func (tc *tourContext) legTime(from, to string) (float64, error) {
	vehicle, err := tc.world.Vehicle(tc.vehicle)
	if err != nil {
		return 0, err
	}
	bodies, err := tc.world.Bodies([]string{from, to})
	if err != nil {
		return 0, err
	}
	return tc.calculator.LegTime(vehicle, bodies[0], bodies[1])
}

func (tc *tourContext) cycleTime(names ...string) (float64, error) {
	total := 0.0
	for i := range names {
		leg, err := tc.legTime(names[i], names[(i+1)%len(names)])
		if err != nil {
			return 0, err
		}
		total += leg
	}
	return total, nil
}

// Given steps

func (tc *tourContext) theOptimizerAcceptsAtMostBodies(limit int) error {
	tc.maxBodies = limit
	return nil
}

// When steps

func (tc *tourContext) iPlanATourForOverStartingAt(vehicle, list, start string) error {
	bodies, err := tc.world.Bodies(splitList(list))
	if err != nil {
		return err
	}
	tc.vehicle, tc.bodies, tc.start = vehicle, bodies, start
	tc.tour, tc.err = tc.plan(1)
	return nil
}

// Then steps

func (tc *tourContext) theTourPathShouldBe(expected string) error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	if actual := strings.Join(tc.tour.Path(), " → "); actual != expected {
		return fmt.Errorf("expected path %s, got %s", expected, actual)
	}
	return nil
}

func (tc *tourContext) theTourTotalShouldEqualTheSumOfItsLegTimes() error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	sum := 0.0
	for _, leg := range tc.tour.Legs() {
		expected, err := tc.legTime(leg.From, leg.To)
		if err != nil {
			return err
		}
		if leg.Duration != expected {
			return fmt.Errorf("leg %s priced at %v, expected %v", leg, leg.Duration, expected)
		}
		sum += leg.Duration
	}
	if !closeTo(tc.tour.Total(), sum) {
		return fmt.Errorf("expected total %v, got %v", sum, tc.tour.Total())
	}
	return nil
}

func (tc *tourContext) theTourShouldHaveLegs(count int) error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	if len(tc.tour.Legs()) != count {
		return fmt.Errorf("expected %d legs, got %d", count, len(tc.tour.Legs()))
	}
	return nil
}

func (tc *tourContext) theTourTotalShouldBeTheSmallerOfBothOrderings() error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	names := shared.BodyNames(tc.bodies)
	if len(names) != 3 {
		return fmt.Errorf("expected a three-body tour, got %v", names)
	}

	forward, err := tc.cycleTime(names[0], names[1], names[2])
	if err != nil {
		return err
	}
	backward, err := tc.cycleTime(names[0], names[2], names[1])
	if err != nil {
		return err
	}
	expected := forward
	if backward < forward {
		expected = backward
	}
	if !closeTo(tc.tour.Total(), expected) {
		return fmt.Errorf("expected total %v, got %v", expected, tc.tour.Total())
	}
	return nil
}

func (tc *tourContext) theTourShouldStartAndEndAt(body string) error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	path := tc.tour.Path()
	if path[0] != body || path[len(path)-1] != body {
		return fmt.Errorf("expected tour to start and end at %s, got %v", body, path)
	}
	return nil
}

func (tc *tourContext) theTourShouldHaveEvaluatedOrderings(count int) error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	if tc.tour.Permutations() != count {
		return fmt.Errorf("expected %d orderings, got %d", count, tc.tour.Permutations())
	}
	return nil
}

func (tc *tourContext) sameTour(workers int) error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	again, err := tc.plan(workers)
	if err != nil {
		return err
	}
	if again.Total() != tc.tour.Total() {
		return fmt.Errorf("total changed from %v to %v", tc.tour.Total(), again.Total())
	}
	if strings.Join(again.Path(), ",") != strings.Join(tc.tour.Path(), ",") {
		return fmt.Errorf("path changed from %v to %v", tc.tour.Path(), again.Path())
	}
	return nil
}

func (tc *tourContext) planningAgainShouldGiveTheSameTour() error {
	return tc.sameTour(1)
}

func (tc *tourContext) planningWithWorkersShouldGiveTheSameTour(workers int) error {
	return tc.sameTour(workers)
}

func (tc *tourContext) theTourTotalShouldBe(expected float64) error {
	if err := tc.requireTour(); err != nil {
		return err
	}
	if !closeTo(tc.tour.Total(), expected) {
		return fmt.Errorf("expected total %v, got %v", expected, tc.tour.Total())
	}
	return nil
}

func (tc *tourContext) planningShouldFailWithAConfigurationError() error {
	var configErr *shared.ConfigurationError
	if !errors.As(tc.err, &configErr) {
		return fmt.Errorf("expected ConfigurationError, got %v", tc.err)
	}
	return nil
}

func (tc *tourContext) planningShouldFailWithASearchSpaceError() error {
	var guardErr *shared.SearchSpaceTooLargeError
	if !errors.As(tc.err, &guardErr) {
		return fmt.Errorf("expected SearchSpaceTooLargeError, got %v", tc.err)
	}
	return nil
}

// InitializeTourScenario registers tour optimizer steps
func InitializeTourScenario(ctx *godog.ScenarioContext, world *World) {
	tc := &tourContext{world: world}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the optimizer accepts at most (\d+) bodies$`, tc.theOptimizerAcceptsAtMostBodies)

	// When steps
	ctx.Step(`^I plan a tour for "([^"]*)" over "([^"]*)" starting at "([^"]*)"$`, tc.iPlanATourForOverStartingAt)

	// Then steps
	ctx.Step(`^the tour path should be "([^"]*)"$`, tc.theTourPathShouldBe)
	ctx.Step(`^the tour total should equal the sum of its leg times$`, tc.theTourTotalShouldEqualTheSumOfItsLegTimes)
	ctx.Step(`^the tour should have (\d+) legs$`, tc.theTourShouldHaveLegs)
	ctx.Step(`^the tour total should be the smaller of both orderings$`, tc.theTourTotalShouldBeTheSmallerOfBothOrderings)
	ctx.Step(`^the tour should start and end at "([^"]*)"$`, tc.theTourShouldStartAndEndAt)
	ctx.Step(`^the tour should have evaluated (\d+) orderings$`, tc.theTourShouldHaveEvaluatedOrderings)
	ctx.Step(`^planning again should give the same tour$`, tc.planningAgainShouldGiveTheSameTour)
	ctx.Step(`^planning with (\d+) workers should give the same tour$`, tc.planningWithWorkersShouldGiveTheSameTour)
	ctx.Step(`^the tour total should be (\d+(?:\.\d+)?) seconds$`, tc.theTourTotalShouldBe)
	ctx.Step(`^planning should fail with a configuration error$`, tc.planningShouldFailWithAConfigurationError)
	ctx.Step(`^planning should fail with a search space error$`, tc.planningShouldFailWithASearchSpaceError)
}
