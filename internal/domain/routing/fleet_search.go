package routing

import (
	"context"
	"errors"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// FleetResult holds the per-vehicle tours and the globally best one
type FleetResult struct {
	// Best is nil when every vehicle was excluded
	Best *Tour
	// Tours follows vehicle input order; excluded vehicles are absent
	Tours []*Tour
	// Exclusions explains every vehicle that could not complete a tour
	Exclusions []navigation.Exclusion
}

// TourFor returns the tour found for a vehicle, or nil when it was excluded
func (r *FleetResult) TourFor(vehicle string) *Tour {
	for _, tour := range r.Tours {
		if tour.Vehicle() == vehicle {
			return tour
		}
	}
	return nil
}

// FleetSearch runs a TourSolver for each vehicle and picks the fastest tour.
// Ties on total duration keep the vehicle listed first.
type FleetSearch struct {
	solver TourSolver
}

func NewFleetSearch(solver TourSolver) *FleetSearch {
	return &FleetSearch{solver: solver}
}

// Optimize plans a tour from start for every vehicle in order.
//
// A vehicle whose pairwise leg cannot be flown becomes an Exclusion and the
// search moves on. Configuration errors, search-space errors and context
// cancellation abort the whole search.
func (f *FleetSearch) Optimize(ctx context.Context, vehicles []*fleet.Vehicle, bodies []shared.Body, start string) (*FleetResult, error) {
	if err := fleet.RequireVehicles(vehicles); err != nil {
		return nil, err
	}

	result := &FleetResult{}

	for _, vehicle := range vehicles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tour, err := f.solver.OptimizeTour(ctx, &TourRequest{
			Vehicle:   vehicle,
			Bodies:    bodies,
			StartBody: start,
		})
		if err != nil {
			var infeasible *shared.InfeasibleTraversalError
			if errors.As(err, &infeasible) {
				result.Exclusions = append(result.Exclusions, navigation.Exclusion{
					Vehicle: vehicle.Name(),
					Body:    infeasible.Body,
					Reason:  err,
				})
				continue
			}
			return nil, err
		}

		result.Tours = append(result.Tours, tour)
		if result.Best == nil || tour.Total() < result.Best.Total() {
			result.Best = tour
		}
	}

	return result, nil
}
