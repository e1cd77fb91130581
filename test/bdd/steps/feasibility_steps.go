package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

type feasibilityContext struct {
	world     *World
	evaluator *navigation.FeasibilityEvaluator

	table *navigation.FeasibilityTable
	err   error
}

func (fc *feasibilityContext) reset() {
	fc.evaluator = navigation.NewFeasibilityEvaluator(nil)
	fc.table = nil
	fc.err = nil
}

func (fc *feasibilityContext) iEvaluateFeasibility() error {
	fc.table, fc.err = fc.evaluator.Evaluate(fc.world.vehicles, fc.world.bodies)
	return nil
}

func (fc *feasibilityContext) requireTable() error {
	if fc.err != nil {
		return fmt.Errorf("evaluation failed: %v", fc.err)
	}
	if fc.table == nil {
		return fmt.Errorf("feasibility was not evaluated")
	}
	return nil
}

func (fc *feasibilityContext) theSafeVehiclesShouldBe(list string) error {
	if err := fc.requireTable(); err != nil {
		return err
	}
	expected := splitList(list)
	actual := navigation.SafeVehicles(fc.table)
	if strings.Join(actual, ",") != strings.Join(expected, ",") {
		return fmt.Errorf("expected safe vehicles %v, got %v", expected, actual)
	}
	return nil
}

func (fc *feasibilityContext) thereShouldBeNoSafeVehicles() error {
	if err := fc.requireTable(); err != nil {
		return err
	}
	if safe := navigation.SafeVehicles(fc.table); len(safe) != 0 {
		return fmt.Errorf("expected no safe vehicles, got %v", safe)
	}
	return nil
}

func (fc *feasibilityContext) shouldBeFeasibleAt(vehicle, body string) error {
	if err := fc.requireTable(); err != nil {
		return err
	}
	if !fc.table.IsFeasible(vehicle, body) {
		return fmt.Errorf("expected %s to be feasible at %s: %v", vehicle, body, fc.table.Reason(vehicle, body))
	}
	return nil
}

func (fc *feasibilityContext) shouldNotBeFeasibleAt(vehicle, body string) error {
	if err := fc.requireTable(); err != nil {
		return err
	}
	if fc.table.IsFeasible(vehicle, body) {
		return fmt.Errorf("expected %s not to be feasible at %s", vehicle, body)
	}
	return nil
}

func (fc *feasibilityContext) shouldBeExcludedAtFor(vehicle, body, reason string) error {
	if err := fc.requireTable(); err != nil {
		return err
	}

	for _, exclusion := range navigation.Exclusions(fc.table) {
		if exclusion.Vehicle != vehicle {
			continue
		}
		if exclusion.Body != body {
			return fmt.Errorf("expected %s to be excluded at %s, got %s", vehicle, body, exclusion.Body)
		}

		var traversalErr *shared.InfeasibleTraversalError
		if !errors.As(exclusion.Reason, &traversalErr) {
			return fmt.Errorf("expected a traversal error, got %v", exclusion.Reason)
		}
		expected := shared.PhaseAscent
		if reason == "deceleration" {
			expected = shared.PhaseDescent
		}
		if traversalErr.Phase != expected {
			return fmt.Errorf("expected %s to fail in %s, got %s", vehicle, expected, traversalErr.Phase)
		}
		return nil
	}
	return fmt.Errorf("%s was not excluded", vehicle)
}

func (fc *feasibilityContext) evaluationShouldFailWithAConfigurationError() error {
	var configErr *shared.ConfigurationError
	if !errors.As(fc.err, &configErr) {
		return fmt.Errorf("expected ConfigurationError, got %v", fc.err)
	}
	return nil
}

// InitializeFeasibilityScenario registers feasibility table steps
func InitializeFeasibilityScenario(ctx *godog.ScenarioContext, world *World) {
	fc := &feasibilityContext{world: world}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	// When steps
	ctx.Step(`^I evaluate feasibility$`, fc.iEvaluateFeasibility)

	// Then steps
	ctx.Step(`^the safe vehicles should be "([^"]*)"$`, fc.theSafeVehiclesShouldBe)
	ctx.Step(`^there should be no safe vehicles$`, fc.thereShouldBeNoSafeVehicles)
	ctx.Step(`^"([^"]*)" should be feasible at "([^"]*)"$`, fc.shouldBeFeasibleAt)
	ctx.Step(`^"([^"]*)" should not be feasible at "([^"]*)"$`, fc.shouldNotBeFeasibleAt)
	ctx.Step(`^"([^"]*)" should be excluded at "([^"]*)" for insufficient (thrust|deceleration)$`, fc.shouldBeExcludedAtFor)
	ctx.Step(`^evaluation should fail with a configuration error$`, fc.evaluationShouldFailWithAConfigurationError)
}
