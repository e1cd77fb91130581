package routing

import (
	"fmt"
	"strings"
	"time"
)

// TourLeg represents one directed, priced segment of a tour
type TourLeg struct {
	From     string
	To       string
	Duration float64 // seconds: ascent(From) + transit + descent(To)
}

func (l TourLeg) String() string {
	return fmt.Sprintf("%s → %s (%.2fs)", l.From, l.To, l.Duration)
}

// Edge is the (source, destination, cost) triple consumed by graph renderers
type Edge struct {
	Source      string
	Destination string
	Cost        float64
}

// Tour represents the best closed cycle found for one vehicle
//
// Invariants:
// - Bodies start with the fixed start body and list every body exactly once
// - Legs has one entry per body; the last leg returns to the start
// - Total is the sum of leg durations
//
// A Tour is a pure output. It is rebuilt on every search and never mutated.
type Tour struct {
	vehicle      string
	bodies       []string
	legs         []TourLeg
	total        float64
	permutations int
}

// NewTour builds a tour from an ordered body cycle and its leg durations.
// legs[i] must price bodies[i] → bodies[(i+1) % n].
func NewTour(vehicle string, bodies []string, durations []float64) (*Tour, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("tour for %s has no bodies", vehicle)
	}
	if len(bodies) == 1 {
		if len(durations) != 0 {
			return nil, fmt.Errorf("single-body tour for %s cannot have legs", vehicle)
		}
		return &Tour{vehicle: vehicle, bodies: []string{bodies[0]}}, nil
	}
	if len(durations) != len(bodies) {
		return nil, fmt.Errorf("tour for %s has %d bodies but %d legs", vehicle, len(bodies), len(durations))
	}

	t := &Tour{
		vehicle: vehicle,
		bodies:  append([]string(nil), bodies...),
		legs:    make([]TourLeg, len(bodies)),
	}
	for i, duration := range durations {
		t.legs[i] = TourLeg{
			From:     bodies[i],
			To:       bodies[(i+1)%len(bodies)],
			Duration: duration,
		}
		t.total += duration
	}
	return t, nil
}

// Getters

func (t *Tour) Vehicle() string {
	return t.vehicle
}

// Bodies returns the visiting order; the closing return to the start is implied
func (t *Tour) Bodies() []string {
	return append([]string(nil), t.bodies...)
}

func (t *Tour) Legs() []TourLeg {
	return append([]TourLeg(nil), t.legs...)
}

// Total returns the cycle duration in seconds
func (t *Tour) Total() float64 {
	return t.total
}

// Duration returns the cycle duration for display
func (t *Tour) Duration() time.Duration {
	return time.Duration(t.total * float64(time.Second))
}

// Start returns the fixed first body
func (t *Tour) Start() string {
	return t.bodies[0]
}

// Permutations returns how many candidate orderings were priced to find this tour
func (t *Tour) Permutations() int {
	return t.permutations
}

// Edges returns the legs as (source, destination, cost) triples
func (t *Tour) Edges() []Edge {
	edges := make([]Edge, len(t.legs))
	for i, leg := range t.legs {
		edges[i] = Edge{Source: leg.From, Destination: leg.To, Cost: leg.Duration}
	}
	return edges
}

// Path returns the closed cycle, start body repeated at the end
func (t *Tour) Path() []string {
	path := append([]string(nil), t.bodies...)
	if len(path) > 1 {
		path = append(path, t.bodies[0])
	}
	return path
}

func (t *Tour) String() string {
	return fmt.Sprintf("Tour(%s: %s, %.2fs)", t.vehicle, strings.Join(t.Path(), " → "), t.total)
}
