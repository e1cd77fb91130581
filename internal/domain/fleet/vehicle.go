package fleet

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// Vehicle entity - represents one craft's propulsion and drag characteristics
//
// Invariants:
// - Name must be non-empty
// - Mass and thrust must be strictly positive and finite
// - Drag table key set equals the canonical body set exactly
// - Every drag force is finite and non-negative
//
// A Vehicle carries no journey state. Elapsed time is always a derived value
// returned by the kinematic calculator and summed by the caller.
type Vehicle struct {
	name   string
	mass   float64            // kg
	thrust float64            // N
	drag   map[string]float64 // N, keyed by body name
}

// NewVehicle creates a new Vehicle entity with validation.
// The drag table is copied; later changes to the caller's map have no effect.
func NewVehicle(name string, mass, thrust float64, drag map[string]float64) (*Vehicle, error) {
	v := &Vehicle{
		name:   name,
		mass:   mass,
		thrust: thrust,
		drag:   make(map[string]float64, len(drag)),
	}
	for body, force := range drag {
		v.drag[body] = force
	}

	if err := v.validate(); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) validate() error {
	if v.name == "" {
		return shared.NewConfigurationError("vehicle name", "cannot be empty")
	}

	if math.IsNaN(v.mass) || math.IsInf(v.mass, 0) || v.mass <= 0 {
		return shared.NewConfigurationError("mass", fmt.Sprintf("vehicle %s mass must be positive, got %v", v.name, v.mass))
	}

	if math.IsNaN(v.thrust) || math.IsInf(v.thrust, 0) || v.thrust <= 0 {
		return shared.NewConfigurationError("thrust", fmt.Sprintf("vehicle %s thrust must be positive, got %v", v.name, v.thrust))
	}

	return validateDragTable(v.name, v.drag)
}

func validateDragTable(vehicle string, drag map[string]float64) error {
	canonical := shared.CanonicalBodyNames()

	var unknown []string
	for body, force := range drag {
		if !shared.IsCanonicalBodyName(body) {
			unknown = append(unknown, body)
			continue
		}
		if math.IsNaN(force) || math.IsInf(force, 0) || force < 0 {
			return shared.NewConfigurationError("drag table",
				fmt.Sprintf("vehicle %s drag at %s must be a non-negative finite force, got %v", vehicle, body, force))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return shared.NewConfigurationError("drag table",
			fmt.Sprintf("vehicle %s references unknown bodies: %s", vehicle, strings.Join(unknown, ", ")))
	}

	var missing []string
	for _, body := range canonical {
		if _, ok := drag[body]; !ok {
			missing = append(missing, body)
		}
	}
	if len(missing) > 0 {
		return shared.NewConfigurationError("drag table",
			fmt.Sprintf("vehicle %s must define %d bodies, missing: %s", vehicle, len(canonical), strings.Join(missing, ", ")))
	}

	return nil
}

// Getters

func (v *Vehicle) Name() string {
	return v.name
}

func (v *Vehicle) Mass() float64 {
	return v.mass
}

func (v *Vehicle) Thrust() float64 {
	return v.thrust
}

// DragAt returns the drag force at a body.
// The second value is false when the body is outside the drag table.
func (v *Vehicle) DragAt(body string) (float64, bool) {
	force, ok := v.drag[body]
	return force, ok
}

// DragTable returns a copy of the drag table
func (v *Vehicle) DragTable() map[string]float64 {
	drag := make(map[string]float64, len(v.drag))
	for body, force := range v.drag {
		drag[body] = force
	}
	return drag
}

// WeightOn returns the gravitational force acting on the vehicle at a body
func (v *Vehicle) WeightOn(body shared.Body) float64 {
	return v.mass * body.Gravity()
}

// WithThrust returns a copy of the vehicle with a different thrust
func (v *Vehicle) WithThrust(thrust float64) (*Vehicle, error) {
	return NewVehicle(v.name, v.mass, thrust, v.drag)
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle(%s, mass=%.0fkg, thrust=%.0fN)", v.name, v.mass, v.thrust)
}

// RequireVehicles rejects nil entries in a vehicle list
func RequireVehicles(vehicles []*Vehicle) error {
	for i, v := range vehicles {
		if v == nil {
			return shared.NewConfigurationError("vehicle", fmt.Sprintf("vehicle at index %d is nil", i))
		}
	}
	return nil
}

// VehicleNames extracts names preserving order
func VehicleNames(vehicles []*Vehicle) []string {
	names := make([]string, len(vehicles))
	for i, v := range vehicles {
		names[i] = v.name
	}
	return names
}

// FindVehicle returns the named vehicle from a list.
// Returns a ConfigurationError when the name is not a known vehicle.
func FindVehicle(vehicles []*Vehicle, name string) (*Vehicle, error) {
	for _, v := range vehicles {
		if v.name == name {
			return v, nil
		}
	}
	return nil, shared.NewConfigurationError("vehicle", fmt.Sprintf("%q is not a known vehicle name", name))
}
