package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Configuration errors

// ConfigurationError reports malformed body, vehicle or scenario input.
// It is fatal for the scenario and is raised before any physics runs.
type ConfigurationError struct {
	*DomainError
	Field string
}

func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid %s: %s", field, message)},
		Field:       field,
	}
}

// Traversal errors

// TraversalPhase names the physical regime in which a force balance failed
type TraversalPhase string

const (
	PhaseAscent  TraversalPhase = "ASCENT"
	PhaseDescent TraversalPhase = "DESCENT"
)

// InfeasibleTraversalError is the family of recoverable physics failures:
// the net propulsive force in the modeled direction is not positive.
type InfeasibleTraversalError struct {
	*DomainError
	Vehicle  string
	Body     string
	Phase    TraversalPhase
	NetForce float64
}

func newInfeasibleTraversalError(message, vehicle, body string, phase TraversalPhase, netForce float64) *InfeasibleTraversalError {
	return &InfeasibleTraversalError{
		DomainError: &DomainError{Message: message},
		Vehicle:     vehicle,
		Body:        body,
		Phase:       phase,
		NetForce:    netForce,
	}
}

type InsufficientThrustError struct {
	*InfeasibleTraversalError
}

func NewInsufficientThrustError(vehicle, body string, netForce float64) *InsufficientThrustError {
	return &InsufficientThrustError{
		InfeasibleTraversalError: newInfeasibleTraversalError(
			fmt.Sprintf("vehicle %s cannot overcome gravity and drag to leave %s (net force %.2f N)", vehicle, body, netForce),
			vehicle,
			body,
			PhaseAscent,
			netForce,
		),
	}
}

// Unwrap exposes the family so errors.As(err, **InfeasibleTraversalError) matches
func (e *InsufficientThrustError) Unwrap() error {
	return e.InfeasibleTraversalError
}

type InsufficientDecelerationError struct {
	*InfeasibleTraversalError
}

func NewInsufficientDecelerationError(vehicle, body string, netForce float64) *InsufficientDecelerationError {
	return &InsufficientDecelerationError{
		InfeasibleTraversalError: newInfeasibleTraversalError(
			fmt.Sprintf("vehicle %s cannot slow down enough to land safely on %s (net force %.2f N)", vehicle, body, netForce),
			vehicle,
			body,
			PhaseDescent,
			netForce,
		),
	}
}

func (e *InsufficientDecelerationError) Unwrap() error {
	return e.InfeasibleTraversalError
}

// IsInfeasible reports whether err is (or wraps) a recoverable physics failure
func IsInfeasible(err error) bool {
	var infeasible *InfeasibleTraversalError
	return errors.As(err, &infeasible)
}

// Search errors

// SearchSpaceTooLargeError guards the exhaustive tour search against factorial blow-up
type SearchSpaceTooLargeError struct {
	*DomainError
	Bodies int
	Limit  int
}

func NewSearchSpaceTooLargeError(bodies, limit int) *SearchSpaceTooLargeError {
	return &SearchSpaceTooLargeError{
		DomainError: &DomainError{Message: fmt.Sprintf("search space too large: %d bodies exceeds limit of %d", bodies, limit)},
		Bodies:      bodies,
		Limit:       limit,
	}
}
