package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/koussay97/space-travel-TSP/internal/adapters/metrics"
	"github.com/koussay97/space-travel-TSP/internal/application/logging"
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
	"github.com/koussay97/space-travel-TSP/pkg/utils"
)

// RunScenarioCommand runs feasibility then tour search for one booster preset
type RunScenarioCommand struct {
	Preset    string        // Required: booster preset name
	StartBody string        // Optional: defaults to routing.DefaultStartBody
	Vehicles  []string      // Optional: restrict to these vehicles, default whole fleet
	Timeout   time.Duration // Optional: bound on the tour search, zero means none
}

// RunScenarioResponse is the full outcome of one scenario
type RunScenarioResponse struct {
	RunID       string
	Preset      string
	Feasibility *EvaluateFeasibilityResponse
	// Result covers only the vehicles that passed feasibility
	Result  *routing.FleetResult
	Elapsed time.Duration
}

// Exclusions returns feasibility exclusions followed by those found while
// pricing legs between bodies
func (r *RunScenarioResponse) Exclusions() []navigation.Exclusion {
	out := append([]navigation.Exclusion(nil), r.Feasibility.Exclusions...)
	if r.Result != nil {
		out = append(out, r.Result.Exclusions...)
	}
	return out
}

// RunScenarioHandler handles the RunScenario command
type RunScenarioHandler struct {
	source    BodySource
	evaluator *navigation.FeasibilityEvaluator
	solver    routing.TourSolver
	clock     shared.Clock
}

// NewRunScenarioHandler creates a new RunScenarioHandler.
// A nil clock falls back to the real clock.
func NewRunScenarioHandler(source BodySource, evaluator *navigation.FeasibilityEvaluator, solver routing.TourSolver, clock shared.Clock) *RunScenarioHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunScenarioHandler{
		source:    source,
		evaluator: evaluator,
		solver:    solver,
		clock:     clock,
	}
}

// Handle executes the RunScenario command
func (h *RunScenarioHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RunScenarioCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunScenarioCommand")
	}

	started := h.clock.Now()
	runID := utils.GenerateRunID("run", cmd.Preset)
	logger := logging.LoggerFromContext(ctx)
	logger.Log("INFO", fmt.Sprintf("[Scenario] Starting %s", runID), map[string]interface{}{
		"preset": cmd.Preset,
	})

	bodies, err := h.source.Bodies(cmd.Preset)
	if err != nil {
		return nil, fmt.Errorf("failed to load bodies: %w", err)
	}

	vehicles, err := selectVehicles(h.source, cmd.Vehicles)
	if err != nil {
		return nil, err
	}

	feasibility, err := evaluate(ctx, h.evaluator, cmd.Preset, bodies, vehicles)
	if err != nil {
		return nil, err
	}

	safe := make([]*fleet.Vehicle, 0, len(feasibility.SafeVehicles))
	for _, vehicle := range vehicles {
		if contains(feasibility.SafeVehicles, vehicle.Name()) {
			safe = append(safe, vehicle)
		}
	}

	start := cmd.StartBody
	if start == "" {
		start = routing.DefaultStartBody
	}

	searchCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	search := routing.NewFleetSearch(&instrumentedSolver{inner: h.solver, preset: cmd.Preset})
	result, err := search.Optimize(searchCtx, safe, bodies, start)
	if err != nil {
		logger.Log("ERROR", fmt.Sprintf("[Scenario] Tour search failed: %v", err), map[string]interface{}{
			"run_id": runID,
			"preset": cmd.Preset,
		})
		return nil, fmt.Errorf("tour search for preset %s failed: %w", cmd.Preset, err)
	}

	for _, exclusion := range result.Exclusions {
		logger.Log("WARN", fmt.Sprintf("[Scenario] %s", exclusion), map[string]interface{}{
			"run_id": runID,
		})
		metrics.RecordExclusion(cmd.Preset, exclusion.Body, phaseOf(exclusion.Reason))
	}

	if result.Best == nil {
		logger.Log("WARN", "[Scenario] No vehicle can complete the tour", map[string]interface{}{
			"run_id": runID,
			"preset": cmd.Preset,
		})
	} else {
		metrics.RecordBestTour(cmd.Preset, result.Best.Vehicle(), result.Best.Total())
		logger.Log("INFO", fmt.Sprintf("[Scenario] Best tour: %s", result.Best), map[string]interface{}{
			"run_id": runID,
			"preset": cmd.Preset,
		})
	}

	return &RunScenarioResponse{
		RunID:       runID,
		Preset:      cmd.Preset,
		Feasibility: feasibility,
		Result:      result,
		Elapsed:     h.clock.Now().Sub(started),
	}, nil
}
