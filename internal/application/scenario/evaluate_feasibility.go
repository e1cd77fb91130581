package scenario

import (
	"context"
	"fmt"

	"github.com/koussay97/space-travel-TSP/internal/adapters/metrics"
	"github.com/koussay97/space-travel-TSP/internal/application/logging"
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// EvaluateFeasibilityQuery asks which vehicles can operate at every body of a preset
type EvaluateFeasibilityQuery struct {
	Preset   string   // Required: booster preset name
	Vehicles []string // Optional: restrict to these vehicles, default whole fleet
}

// EvaluateFeasibilityResponse represents the feasibility table of one preset
type EvaluateFeasibilityResponse struct {
	Preset       string
	Bodies       []shared.Body
	Table        *navigation.FeasibilityTable
	SafeVehicles []string
	Exclusions   []navigation.Exclusion
}

// EvaluateFeasibilityHandler handles the EvaluateFeasibility query
type EvaluateFeasibilityHandler struct {
	source    BodySource
	evaluator *navigation.FeasibilityEvaluator
}

// NewEvaluateFeasibilityHandler creates a new EvaluateFeasibilityHandler
func NewEvaluateFeasibilityHandler(source BodySource, evaluator *navigation.FeasibilityEvaluator) *EvaluateFeasibilityHandler {
	return &EvaluateFeasibilityHandler{
		source:    source,
		evaluator: evaluator,
	}
}

// Handle executes the EvaluateFeasibility query
func (h *EvaluateFeasibilityHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*EvaluateFeasibilityQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EvaluateFeasibilityQuery")
	}

	bodies, err := h.source.Bodies(query.Preset)
	if err != nil {
		return nil, fmt.Errorf("failed to load bodies: %w", err)
	}

	vehicles, err := selectVehicles(h.source, query.Vehicles)
	if err != nil {
		return nil, err
	}

	return evaluate(ctx, h.evaluator, query.Preset, bodies, vehicles)
}

func evaluate(
	ctx context.Context,
	evaluator *navigation.FeasibilityEvaluator,
	preset string,
	bodies []shared.Body,
	vehicles []*fleet.Vehicle,
) (*EvaluateFeasibilityResponse, error) {
	logger := logging.LoggerFromContext(ctx)

	table, err := evaluator.Evaluate(vehicles, bodies)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate feasibility: %w", err)
	}

	safe := navigation.SafeVehicles(table)
	exclusions := navigation.Exclusions(table)

	for _, exclusion := range exclusions {
		logger.Log("WARN", fmt.Sprintf("[Feasibility] %s", exclusion), map[string]interface{}{
			"preset":  preset,
			"vehicle": exclusion.Vehicle,
			"body":    exclusion.Body,
		})
		metrics.RecordExclusion(preset, exclusion.Body, phaseOf(exclusion.Reason))
	}
	metrics.RecordFeasibility(preset, len(safe), len(exclusions))
	logger.Log("INFO", fmt.Sprintf("[Feasibility] %d of %d vehicles can operate at every body", len(safe), len(vehicles)), map[string]interface{}{
		"preset": preset,
	})

	return &EvaluateFeasibilityResponse{
		Preset:       preset,
		Bodies:       bodies,
		Table:        table,
		SafeVehicles: safe,
		Exclusions:   exclusions,
	}, nil
}
