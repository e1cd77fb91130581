package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/koussay97/space-travel-TSP/test/bdd/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// The fleet context owns body and vehicle setup steps; the other
	// domain contexts read the bodies and vehicles it builds
	world := steps.InitializeFleetScenario(sc)
	steps.InitializeKinematicsScenario(sc, world)
	steps.InitializeFeasibilityScenario(sc, world)
	steps.InitializeTourScenario(sc, world)
	steps.InitializeRunScenarioScenario(sc)
}
