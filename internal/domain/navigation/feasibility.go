package navigation

import (
	"fmt"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// FeasibilityTable records, per vehicle and body, whether the vehicle can both
// leave and land on that body in isolation.
//
// Rows follow vehicle input order and columns follow body input order, so the
// table renders the same way every time.
type FeasibilityTable struct {
	vehicles []string
	bodies   []string
	cells    map[string]map[string]error // nil error = feasible
}

func newFeasibilityTable(vehicles, bodies []string) *FeasibilityTable {
	cells := make(map[string]map[string]error, len(vehicles))
	for _, v := range vehicles {
		cells[v] = make(map[string]error, len(bodies))
	}
	return &FeasibilityTable{
		vehicles: vehicles,
		bodies:   bodies,
		cells:    cells,
	}
}

// Vehicles returns row names in order
func (t *FeasibilityTable) Vehicles() []string {
	out := make([]string, len(t.vehicles))
	copy(out, t.vehicles)
	return out
}

// Bodies returns column names in order
func (t *FeasibilityTable) Bodies() []string {
	out := make([]string, len(t.bodies))
	copy(out, t.bodies)
	return out
}

// IsFeasible returns the cell value; unknown vehicle/body pairs read as false
func (t *FeasibilityTable) IsFeasible(vehicle, body string) bool {
	row, ok := t.cells[vehicle]
	if !ok {
		return false
	}
	reason, ok := row[body]
	return ok && reason == nil
}

// Reason returns why a cell is false, or nil when it is true
func (t *FeasibilityTable) Reason(vehicle, body string) error {
	row, ok := t.cells[vehicle]
	if !ok {
		return shared.NewConfigurationError("vehicle", fmt.Sprintf("%q is not in the feasibility table", vehicle))
	}
	reason, ok := row[body]
	if !ok {
		return shared.NewConfigurationError("body", fmt.Sprintf("%q is not in the feasibility table", body))
	}
	return reason
}

// Row returns the boolean row for a vehicle in column order
func (t *FeasibilityTable) Row(vehicle string) []bool {
	row := make([]bool, len(t.bodies))
	for i, body := range t.bodies {
		row[i] = t.IsFeasible(vehicle, body)
	}
	return row
}

// Exclusion explains why a vehicle was dropped before or during route search
type Exclusion struct {
	Vehicle string
	Body    string
	Reason  error
}

func (e Exclusion) String() string {
	return fmt.Sprintf("%s excluded at %s: %v", e.Vehicle, e.Body, e.Reason)
}

// FeasibilityEvaluator applies the kinematic model to every vehicle/body pair
type FeasibilityEvaluator struct {
	calculator *KinematicCalculator
}

// NewFeasibilityEvaluator creates a new evaluator over the given calculator.
// A nil calculator falls back to a fresh KinematicCalculator.
func NewFeasibilityEvaluator(calculator *KinematicCalculator) *FeasibilityEvaluator {
	if calculator == nil {
		calculator = NewKinematicCalculator()
	}
	return &FeasibilityEvaluator{calculator: calculator}
}

// Evaluate builds the feasibility table.
//
// Each cell runs AscentTime and DescentTime on that single body; it is true
// only when both succeed. Physics failures are recorded as the cell reason.
// Configuration failures, including duplicate vehicle or body names, abort.
func (e *FeasibilityEvaluator) Evaluate(vehicles []*fleet.Vehicle, bodies []shared.Body) (*FeasibilityTable, error) {
	if err := fleet.RequireVehicles(vehicles); err != nil {
		return nil, err
	}
	vehicleNames, err := uniqueNames("vehicle", fleet.VehicleNames(vehicles))
	if err != nil {
		return nil, err
	}
	bodyNames, err := uniqueNames("body", shared.BodyNames(bodies))
	if err != nil {
		return nil, err
	}

	table := newFeasibilityTable(vehicleNames, bodyNames)
	for _, vehicle := range vehicles {
		for _, body := range bodies {
			reason := e.checkBody(vehicle, body)
			if reason != nil && !shared.IsInfeasible(reason) {
				return nil, reason
			}
			table.cells[vehicle.Name()][body.Name()] = reason
		}
	}

	return table, nil
}

// checkBody returns nil when the vehicle can both leave and land on body
func (e *FeasibilityEvaluator) checkBody(vehicle *fleet.Vehicle, body shared.Body) error {
	if _, err := e.calculator.AscentTime(vehicle, body); err != nil {
		return err
	}
	_, err := e.calculator.DescentTime(vehicle, body)
	return err
}

// SafeVehicles returns vehicles whose every body entry is true, in row order
func SafeVehicles(table *FeasibilityTable) []string {
	safe := make([]string, 0, len(table.vehicles))
	for _, vehicle := range table.vehicles {
		if allTrue(table.Row(vehicle)) {
			safe = append(safe, vehicle)
		}
	}
	return safe
}

// Exclusions lists every vehicle with at least one false cell, reporting the
// first failing body in column order
func Exclusions(table *FeasibilityTable) []Exclusion {
	var excluded []Exclusion
	for _, vehicle := range table.vehicles {
		for _, body := range table.bodies {
			if reason := table.cells[vehicle][body]; reason != nil {
				excluded = append(excluded, Exclusion{Vehicle: vehicle, Body: body, Reason: reason})
				break
			}
		}
	}
	return excluded
}

func allTrue(row []bool) bool {
	for _, ok := range row {
		if !ok {
			return false
		}
	}
	return true
}

func uniqueNames(kind string, names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, shared.NewConfigurationError(kind, fmt.Sprintf("duplicate %s name %q", kind, name))
		}
		seen[name] = true
	}
	return names, nil
}
