package scenario

import (
	"errors"
	"fmt"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// phaseOf returns the traversal phase label of an infeasibility, or "UNKNOWN"
func phaseOf(err error) string {
	var infeasible *shared.InfeasibleTraversalError
	if errors.As(err, &infeasible) {
		return string(infeasible.Phase)
	}
	return "UNKNOWN"
}

// selectVehicles narrows the fleet to the named vehicles, keeping the order
// the names were given in. No names selects the whole fleet.
func selectVehicles(source BodySource, names []string) ([]*fleet.Vehicle, error) {
	if len(names) == 0 {
		return source.Vehicles(), nil
	}

	seen := make(map[string]bool, len(names))
	vehicles := make([]*fleet.Vehicle, 0, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, shared.NewConfigurationError("vehicle", fmt.Sprintf("%s selected more than once", name))
		}
		seen[name] = true

		vehicle, err := source.Vehicle(name)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
