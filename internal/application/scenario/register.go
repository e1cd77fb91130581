package scenario

import (
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
)

// RegisterHandlers wires the scenario queries and commands into a mediator
func RegisterHandlers(m mediator.Mediator, source BodySource, calculator *navigation.KinematicCalculator, solver routing.TourSolver) error {
	evaluator := navigation.NewFeasibilityEvaluator(calculator)

	if err := mediator.RegisterHandler[*EvaluateFeasibilityQuery](m, NewEvaluateFeasibilityHandler(source, evaluator)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*PlanTourQuery](m, NewPlanTourHandler(source, solver, calculator)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*RunScenarioCommand](m, NewRunScenarioHandler(source, evaluator, solver, nil))
}
