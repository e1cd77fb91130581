package scenario

import (
	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

// BodySource supplies the bodies of a booster preset and the vehicle fleet.
// catalog.Catalog is the production implementation.
type BodySource interface {
	Bodies(preset string) ([]shared.Body, error)
	Vehicles() []*fleet.Vehicle
	Vehicle(name string) (*fleet.Vehicle, error)
}
