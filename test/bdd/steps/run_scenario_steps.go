package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/koussay97/space-travel-TSP/internal/adapters/catalog"
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/application/scenario"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

type runScenarioContext struct {
	catalog  *catalog.Catalog
	response *scenario.RunScenarioResponse
	err      error
}

func (rc *runScenarioContext) reset() {
	rc.catalog = nil
	rc.response = nil
	rc.err = nil
}

func (rc *runScenarioContext) requireResponse() error {
	if rc.err != nil {
		return fmt.Errorf("scenario failed: %v", rc.err)
	}
	if rc.response == nil {
		return fmt.Errorf("no scenario was run")
	}
	return nil
}

// Given steps

func (rc *runScenarioContext) theBuiltInCatalog() error {
	rc.catalog = catalog.Builtin()
	return nil
}

// When steps

func (rc *runScenarioContext) iRunTheScenarioWithWorkers(preset string, workers int) error {
	calculator := navigation.NewKinematicCalculator()
	optimizer := routing.NewTourOptimizer(calculator, routing.Options{Workers: workers})

	m := mediator.NewMediator()
	if err := scenario.RegisterHandlers(m, rc.catalog, calculator, optimizer); err != nil {
		return err
	}

	response, err := m.Send(context.Background(), &scenario.RunScenarioCommand{Preset: preset})
	if err != nil {
		rc.err = err
		return nil
	}
	rc.response = response.(*scenario.RunScenarioResponse)
	return nil
}

// Then steps

func (rc *runScenarioContext) theScenarioSafeVehiclesShouldBe(table *godog.Table) error {
	if err := rc.requireResponse(); err != nil {
		return err
	}

	var expected []string
	for _, row := range table.Rows[1:] {
		expected = append(expected, getCellValueFromTable(table, row, "vehicle"))
	}
	actual := rc.response.Feasibility.SafeVehicles
	if strings.Join(actual, "|") != strings.Join(expected, "|") {
		return fmt.Errorf("expected safe vehicles %v, got %v", expected, actual)
	}
	return nil
}

func (rc *runScenarioContext) theScenarioExclusionsShouldBe(table *godog.Table) error {
	if err := rc.requireResponse(); err != nil {
		return err
	}

	exclusions := rc.response.Exclusions()
	if len(exclusions) != len(table.Rows)-1 {
		return fmt.Errorf("expected %d exclusions, got %d: %v", len(table.Rows)-1, len(exclusions), exclusions)
	}

	for i, row := range table.Rows[1:] {
		exclusion := exclusions[i]
		vehicle := getCellValueFromTable(table, row, "vehicle")
		body := getCellValueFromTable(table, row, "body")
		phase := getCellValueFromTable(table, row, "phase")

		if exclusion.Vehicle != vehicle || exclusion.Body != body {
			return fmt.Errorf("exclusion %d: expected %s at %s, got %s at %s", i, vehicle, body, exclusion.Vehicle, exclusion.Body)
		}

		var traversalErr *shared.InfeasibleTraversalError
		if !errors.As(exclusion.Reason, &traversalErr) {
			return fmt.Errorf("exclusion %d: expected a traversal error, got %v", i, exclusion.Reason)
		}
		if string(traversalErr.Phase) != phase {
			return fmt.Errorf("exclusion %d: expected phase %s, got %s", i, phase, traversalErr.Phase)
		}
	}
	return nil
}

func (rc *runScenarioContext) everySafeVehicleShouldHaveATourVisitingBodiesFrom(count int, start string) error {
	if err := rc.requireResponse(); err != nil {
		return err
	}

	for _, vehicle := range rc.response.Feasibility.SafeVehicles {
		tour := rc.response.Result.TourFor(vehicle)
		if tour == nil {
			return fmt.Errorf("no tour for %s", vehicle)
		}
		if tour.Start() != start {
			return fmt.Errorf("tour for %s starts at %s", vehicle, tour.Start())
		}
		if len(tour.Bodies()) != count {
			return fmt.Errorf("tour for %s visits %d bodies", vehicle, len(tour.Bodies()))
		}
		seen := make(map[string]bool, count)
		for _, body := range tour.Bodies() {
			if seen[body] {
				return fmt.Errorf("tour for %s visits %s twice", vehicle, body)
			}
			seen[body] = true
		}
	}
	return nil
}

func (rc *runScenarioContext) theBestTourShouldBeTheFastestOfAllTours() error {
	if err := rc.requireResponse(); err != nil {
		return err
	}

	best := rc.response.Result.Best
	if best == nil {
		return fmt.Errorf("no best tour")
	}
	for _, tour := range rc.response.Result.Tours {
		if tour.Total() < best.Total() {
			return fmt.Errorf("%s is faster than the best %s", tour, best)
		}
	}
	return nil
}

func (rc *runScenarioContext) theScenarioShouldFailWithAConfigurationError() error {
	var configErr *shared.ConfigurationError
	if !errors.As(rc.err, &configErr) {
		return fmt.Errorf("expected ConfigurationError, got %v", rc.err)
	}
	return nil
}

// InitializeRunScenarioScenario registers end-to-end scenario steps
func InitializeRunScenarioScenario(ctx *godog.ScenarioContext) {
	rc := &runScenarioContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the built-in catalog$`, rc.theBuiltInCatalog)

	// When steps
	ctx.Step(`^I run the "([^"]*)" scenario with (\d+) workers$`, rc.iRunTheScenarioWithWorkers)

	// Then steps
	ctx.Step(`^the scenario safe vehicles should be:$`, rc.theScenarioSafeVehiclesShouldBe)
	ctx.Step(`^the scenario exclusions should be:$`, rc.theScenarioExclusionsShouldBe)
	ctx.Step(`^every safe vehicle should have a tour visiting (\d+) bodies from "([^"]*)"$`, rc.everySafeVehicleShouldHaveATourVisitingBodiesFrom)
	ctx.Step(`^the best tour should be the fastest of all tours$`, rc.theBestTourShouldBeTheFastestOfAllTours)
	ctx.Step(`^the scenario should fail with a configuration error$`, rc.theScenarioShouldFailWithAConfigurationError)
}
