package routing

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

const (
	// DefaultMaxBodies bounds the exhaustive search at 10! orderings per vehicle
	DefaultMaxBodies = 11
	// DefaultStartBody is where every tour begins unless a caller says otherwise
	DefaultStartBody = shared.Earth

	cancellationCheckInterval = 4096
)

// Options tunes the exhaustive search
type Options struct {
	// MaxBodies is the largest body count accepted before failing fast
	MaxBodies int
	// Workers > 1 splits the permutation space by the second visited body
	Workers int
}

// DefaultOptions returns a serial search capped at DefaultMaxBodies
func DefaultOptions() Options {
	return Options{
		MaxBodies: DefaultMaxBodies,
		Workers:   1,
	}
}

// TourOptimizer finds the minimum-time closed tour for one vehicle.
//
// The search is exhaustive: every ordering of the non-start bodies is priced
// against a precomputed leg matrix, in lexicographic order over body indices.
// A candidate replaces the best so far only when strictly cheaper, so ties
// keep the ordering enumerated first. Results are reproducible bit for bit,
// with or without workers.
type TourOptimizer struct {
	calculator *navigation.KinematicCalculator
	options    Options
}

// NewTourOptimizer creates a new optimizer.
// A nil calculator falls back to a fresh KinematicCalculator; non-positive
// option values fall back to DefaultOptions.
func NewTourOptimizer(calculator *navigation.KinematicCalculator, options Options) *TourOptimizer {
	if calculator == nil {
		calculator = navigation.NewKinematicCalculator()
	}
	if options.MaxBodies <= 0 {
		options.MaxBodies = DefaultMaxBodies
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &TourOptimizer{
		calculator: calculator,
		options:    options,
	}
}

// Options returns the effective search options
func (o *TourOptimizer) Options() Options {
	return o.options
}

// OptimizeTour implements TourSolver
func (o *TourOptimizer) OptimizeTour(ctx context.Context, request *TourRequest) (*Tour, error) {
	if request == nil {
		return nil, shared.NewConfigurationError("tour request", "cannot be nil")
	}
	return o.Optimize(ctx, request.Vehicle, request.Bodies, request.StartBody)
}

// Optimize searches every closed tour over bodies that begins at start.
//
// Returns:
//   - The best tour; a single body yields a tour with no legs and zero total
//   - *shared.ConfigurationError for an empty body list, duplicate body names
//     or a start body that is not in the list
//   - *shared.SearchSpaceTooLargeError when len(bodies) exceeds MaxBodies,
//     before any leg is priced
//   - The first leg pricing failure, wrapped; shared.IsInfeasible reports true
//     for it when a pairwise leg cannot be flown
//   - ctx.Err() when the context is cancelled mid-search
func (o *TourOptimizer) Optimize(ctx context.Context, vehicle *fleet.Vehicle, bodies []shared.Body, start string) (*Tour, error) {
	if vehicle == nil {
		return nil, shared.NewConfigurationError("vehicle", "cannot be nil")
	}
	if len(bodies) == 0 {
		return nil, shared.NewConfigurationError("bodies", "at least one body is required to plan a tour")
	}
	if len(bodies) > o.options.MaxBodies {
		return nil, shared.NewSearchSpaceTooLargeError(len(bodies), o.options.MaxBodies)
	}

	ordered, err := rotateToStart(bodies, start)
	if err != nil {
		return nil, err
	}
	names := shared.BodyNames(ordered)

	if len(ordered) == 1 {
		return NewTour(vehicle.Name(), names, nil)
	}

	costs, err := o.buildCostMatrix(vehicle, ordered)
	if err != nil {
		return nil, err
	}

	var best candidate
	if o.options.Workers > 1 && len(ordered) > 2 {
		best, err = searchParallel(ctx, costs, o.options.Workers)
	} else {
		best, err = searchPermutations(ctx, costs, identityOrder(len(ordered)), 0)
	}
	if err != nil {
		return nil, err
	}

	return buildTour(vehicle.Name(), names, costs, best)
}

// rotateToStart moves the start body to the front, keeping the others in order
func rotateToStart(bodies []shared.Body, start string) ([]shared.Body, error) {
	seen := make(map[string]bool, len(bodies))
	for _, body := range bodies {
		if seen[body.Name()] {
			return nil, shared.NewConfigurationError("bodies", fmt.Sprintf("duplicate body name %q", body.Name()))
		}
		seen[body.Name()] = true
	}

	index := shared.FindBody(bodies, start)
	if index < 0 {
		return nil, shared.NewConfigurationError("start body", fmt.Sprintf("%q is not in the body list", start))
	}

	ordered := make([]shared.Body, 0, len(bodies))
	ordered = append(ordered, bodies[index])
	ordered = append(ordered, bodies[:index]...)
	ordered = append(ordered, bodies[index+1:]...)
	return ordered, nil
}

// buildCostMatrix prices every ordered pair of distinct bodies.
// The diagonal is unreachable in a Hamiltonian cycle and is stored as +Inf.
func (o *TourOptimizer) buildCostMatrix(vehicle *fleet.Vehicle, bodies []shared.Body) ([][]float64, error) {
	n := len(bodies)
	costs := make([][]float64, n)
	for i := range costs {
		costs[i] = make([]float64, n)
		for j := range costs[i] {
			if i == j {
				costs[i][j] = math.Inf(1)
				continue
			}
			leg, err := o.calculator.LegTime(vehicle, bodies[i], bodies[j])
			if err != nil {
				return nil, fmt.Errorf("pricing leg %s → %s for %s: %w",
					bodies[i].Name(), bodies[j].Name(), vehicle.Name(), err)
			}
			costs[i][j] = leg
		}
	}
	return costs, nil
}

// candidate is the best ordering of body indices 1..n-1 found in a search range
type candidate struct {
	order     []int
	total     float64
	evaluated int
}

// identityOrder returns 1..n-1, the lexicographically first ordering
func identityOrder(n int) []int {
	order := make([]int, n-1)
	for i := range order {
		order[i] = i + 1
	}
	return order
}

// subRangeOrder returns the first ordering whose leading index is second
func subRangeOrder(n, second int) []int {
	order := make([]int, 0, n-1)
	order = append(order, second)
	for i := 1; i < n; i++ {
		if i != second {
			order = append(order, i)
		}
	}
	return order
}

// searchPermutations walks order[fixed:] through every lexicographic successor,
// keeping order[:fixed] in place. order must start sorted from fixed onward.
func searchPermutations(ctx context.Context, costs [][]float64, order []int, fixed int) (candidate, error) {
	best := candidate{total: math.Inf(1)}
	for {
		if best.evaluated%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return candidate{}, err
			}
		}

		total := tourCost(costs, order)
		best.evaluated++
		if total < best.total || best.order == nil {
			best.total = total
			best.order = append(best.order[:0], order...)
		}

		if !nextPermutation(order[fixed:]) {
			return best, nil
		}
	}
}

// searchParallel gives each worker the sub-range of orderings that visit one
// fixed body second. Sub-ranges are disjoint and, taken in index order, cover
// the serial enumeration, so reducing by (total, sub-range index) after every
// worker finishes picks the same tour a serial search would.
func searchParallel(ctx context.Context, costs [][]float64, workers int) (candidate, error) {
	n := len(costs)
	results := make([]candidate, n-1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := range results {
		g.Go(func() error {
			best, err := searchPermutations(gctx, costs, subRangeOrder(n, k+1), 1)
			if err != nil {
				return err
			}
			results[k] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return candidate{}, err
	}

	best := results[0]
	evaluated := results[0].evaluated
	for _, result := range results[1:] {
		evaluated += result.evaluated
		if result.total < best.total {
			best = result
		}
	}
	best.evaluated = evaluated
	return best, nil
}

// tourCost sums the closed cycle 0 → order... → 0 in a fixed order
func tourCost(costs [][]float64, order []int) float64 {
	total := costs[0][order[0]]
	for i := 1; i < len(order); i++ {
		total += costs[order[i-1]][order[i]]
	}
	total += costs[order[len(order)-1]][0]
	return total
}

// nextPermutation rearranges a into its lexicographic successor.
// Returns false, leaving a untouched, when a is already the last ordering.
func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]

	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}

func buildTour(vehicle string, names []string, costs [][]float64, best candidate) (*Tour, error) {
	path := make([]int, 0, len(names))
	path = append(path, 0)
	path = append(path, best.order...)

	visiting := make([]string, len(path))
	durations := make([]float64, len(path))
	for i, index := range path {
		visiting[i] = names[index]
		durations[i] = costs[index][path[(i+1)%len(path)]]
	}

	tour, err := NewTour(vehicle, visiting, durations)
	if err != nil {
		return nil, err
	}
	tour.permutations = best.evaluated
	return tour, nil
}
