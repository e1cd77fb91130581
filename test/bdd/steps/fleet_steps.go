package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// World holds the bodies and vehicles declared by Given steps
type World struct {
	bodies   []shared.Body
	vehicles []*fleet.Vehicle
}

func (w *World) reset() {
	w.bodies = nil
	w.vehicles = nil
}

// Body returns a declared body by name
func (w *World) Body(name string) (shared.Body, error) {
	index := shared.FindBody(w.bodies, name)
	if index < 0 {
		return shared.Body{}, fmt.Errorf("body %s was not declared", name)
	}
	return w.bodies[index], nil
}

// Bodies returns the declared bodies with the given names, in that order
func (w *World) Bodies(names []string) ([]shared.Body, error) {
	bodies := make([]shared.Body, 0, len(names))
	for _, name := range names {
		body, err := w.Body(name)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

// Vehicle returns the first declared vehicle with that name
func (w *World) Vehicle(name string) (*fleet.Vehicle, error) {
	for _, vehicle := range w.vehicles {
		if vehicle.Name() == name {
			return vehicle, nil
		}
	}
	return nil, fmt.Errorf("vehicle %s was not declared", name)
}

// Given steps

func (w *World) theFollowingBodies(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name := getCellValueFromTable(table, row, "name")
		values := make(map[string]float64, 4)
		for _, column := range []string{"gravity", "distance", "atmosphere", "assist"} {
			value, err := parseFloatCell(table, row, column)
			if err != nil {
				return err
			}
			values[column] = value
		}

		body, err := shared.NewBody(name, values["gravity"], values["distance"], values["atmosphere"], values["assist"])
		if err != nil {
			return err
		}
		w.bodies = append(w.bodies, body)
	}
	return nil
}

func (w *World) aVehicleWithMassAndThrust(name string, mass, thrust float64) error {
	vehicle, err := newVehicle(name, mass, thrust, nil)
	if err != nil {
		return err
	}
	w.vehicles = append(w.vehicles, vehicle)
	return nil
}

func (w *World) theVehicleHasDragAt(name string, drag float64, body string) error {
	for i, vehicle := range w.vehicles {
		if vehicle.Name() != name {
			continue
		}
		table := vehicle.DragTable()
		table[body] = drag
		updated, err := fleet.NewVehicle(name, vehicle.Mass(), vehicle.Thrust(), table)
		if err != nil {
			return err
		}
		w.vehicles[i] = updated
		return nil
	}
	return fmt.Errorf("vehicle %s was not declared", name)
}

// newVehicle builds a vehicle with zero drag except where overridden
func newVehicle(name string, mass, thrust float64, overrides map[string]float64) (*fleet.Vehicle, error) {
	drag := make(map[string]float64)
	for _, body := range shared.CanonicalBodyNames() {
		drag[body] = 0
	}
	for body, force := range overrides {
		drag[body] = force
	}
	return fleet.NewVehicle(name, mass, thrust, drag)
}

// InitializeFleetScenario registers body and vehicle setup steps
func InitializeFleetScenario(ctx *godog.ScenarioContext) *World {
	w := &World{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	ctx.Step(`^the following bodies:$`, w.theFollowingBodies)
	ctx.Step(`^a vehicle "([^"]*)" with mass (\d+(?:\.\d+)?) kg and thrust (\d+(?:\.\d+)?) N$`, w.aVehicleWithMassAndThrust)
	ctx.Step(`^the vehicle "([^"]*)" has drag (\d+(?:\.\d+)?) N at "([^"]*)"$`, w.theVehicleHasDragAt)

	return w
}
