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
)

// PlanTourQuery asks for the fastest closed tour of one vehicle
type PlanTourQuery struct {
	Preset    string // Required: booster preset name
	Vehicle   string // Required: vehicle name
	StartBody string // Optional: defaults to routing.DefaultStartBody
}

// PlanTourResponse carries the tour and the phase timings of each leg
type PlanTourResponse struct {
	Preset    string
	Tour      *routing.Tour
	Breakdown []*navigation.LegTiming
}

// PlanTourHandler handles the PlanTour query
type PlanTourHandler struct {
	source     BodySource
	solver     routing.TourSolver
	calculator *navigation.KinematicCalculator
}

// NewPlanTourHandler creates a new PlanTourHandler
func NewPlanTourHandler(source BodySource, solver routing.TourSolver, calculator *navigation.KinematicCalculator) *PlanTourHandler {
	if calculator == nil {
		calculator = navigation.NewKinematicCalculator()
	}
	return &PlanTourHandler{
		source:     source,
		solver:     solver,
		calculator: calculator,
	}
}

// Handle executes the PlanTour query
func (h *PlanTourHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*PlanTourQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanTourQuery")
	}

	logger := logging.LoggerFromContext(ctx)

	bodies, err := h.source.Bodies(query.Preset)
	if err != nil {
		return nil, fmt.Errorf("failed to load bodies: %w", err)
	}

	vehicle, err := h.source.Vehicle(query.Vehicle)
	if err != nil {
		return nil, err
	}

	start := query.StartBody
	if start == "" {
		start = routing.DefaultStartBody
	}

	solver := &instrumentedSolver{inner: h.solver, preset: query.Preset}
	tour, err := solver.OptimizeTour(ctx, &routing.TourRequest{
		Vehicle:   vehicle,
		Bodies:    bodies,
		StartBody: start,
	})
	if err != nil {
		logger.Log("ERROR", fmt.Sprintf("[PlanTour] No tour for %s: %v", vehicle.Name(), err), map[string]interface{}{
			"preset":  query.Preset,
			"vehicle": vehicle.Name(),
		})
		return nil, err
	}

	breakdown, err := legBreakdown(h.calculator, tour, bodies, vehicle)
	if err != nil {
		return nil, err
	}

	logger.Log("INFO", fmt.Sprintf("[PlanTour] %s", tour), map[string]interface{}{
		"preset":       query.Preset,
		"permutations": tour.Permutations(),
	})

	return &PlanTourResponse{
		Preset:    query.Preset,
		Tour:      tour,
		Breakdown: breakdown,
	}, nil
}

func legBreakdown(calculator *navigation.KinematicCalculator, tour *routing.Tour, bodies []shared.Body, vehicle *fleet.Vehicle) ([]*navigation.LegTiming, error) {
	breakdown := make([]*navigation.LegTiming, 0, len(tour.Legs()))
	for _, leg := range tour.Legs() {
		from, to := shared.FindBody(bodies, leg.From), shared.FindBody(bodies, leg.To)
		if from < 0 || to < 0 {
			return nil, fmt.Errorf("tour leg %s references a body outside the scenario", leg)
		}
		timing, err := calculator.LegBreakdown(vehicle, bodies[from], bodies[to])
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, timing)
	}
	return breakdown, nil
}

// instrumentedSolver records search duration and outcome for every tour search
type instrumentedSolver struct {
	inner  routing.TourSolver
	preset string
}

func (s *instrumentedSolver) OptimizeTour(ctx context.Context, request *routing.TourRequest) (*routing.Tour, error) {
	started := time.Now()
	tour, err := s.inner.OptimizeTour(ctx, request)
	elapsed := time.Since(started).Seconds()

	name := ""
	if request != nil && request.Vehicle != nil {
		name = request.Vehicle.Name()
	}

	switch {
	case err == nil:
		metrics.RecordTourSearch(s.preset, name, metrics.OutcomeFound, elapsed, tour.Permutations())
	case shared.IsInfeasible(err):
		metrics.RecordTourSearch(s.preset, name, metrics.OutcomeExcluded, elapsed, 0)
	case ctx.Err() != nil:
		metrics.RecordTourSearch(s.preset, name, metrics.OutcomeCancelled, elapsed, 0)
	default:
		metrics.RecordTourSearch(s.preset, name, metrics.OutcomeFailed, elapsed, 0)
	}
	return tour, err
}
