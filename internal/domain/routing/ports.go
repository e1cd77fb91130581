package routing

import (
	"context"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// TourSolver defines operations for closed-tour planning.
// TourOptimizer is the exhaustive implementation.
type TourSolver interface {
	OptimizeTour(ctx context.Context, request *TourRequest) (*Tour, error)
}

// DTOs for routing operations

type TourRequest struct {
	Vehicle   *fleet.Vehicle
	Bodies    []shared.Body
	StartBody string
}
