package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

func TestInsufficientThrustError_MatchesSpecificTypeAndFamily(t *testing.T) {
	// Arrange
	err := fmt.Errorf("pricing leg: %w", shared.NewInsufficientThrustError("Draco", shared.Jupiter, -250))

	// Act
	var thrustErr *shared.InsufficientThrustError
	var family *shared.InfeasibleTraversalError
	var decelErr *shared.InsufficientDecelerationError

	// Assert
	require.True(t, errors.As(err, &thrustErr))
	require.True(t, errors.As(err, &family))
	assert.False(t, errors.As(err, &decelErr))
	assert.Equal(t, "Draco", family.Vehicle)
	assert.Equal(t, shared.Jupiter, family.Body)
	assert.Equal(t, shared.PhaseAscent, family.Phase)
	assert.Equal(t, -250.0, family.NetForce)
	assert.True(t, shared.IsInfeasible(err))
	assert.Contains(t, err.Error(), "cannot overcome gravity and drag to leave Jupiter")
}

func TestInsufficientDecelerationError_CarriesDescentPhase(t *testing.T) {
	// Arrange
	err := shared.NewInsufficientDecelerationError("Draco", shared.Sun, 0)

	// Act
	var family *shared.InfeasibleTraversalError
	ok := errors.As(err, &family)

	// Assert
	require.True(t, ok)
	assert.Equal(t, shared.PhaseDescent, family.Phase)
	assert.Contains(t, err.Error(), "land safely on Sun")
}

func TestConfigurationError_IsNotInfeasible(t *testing.T) {
	// Arrange
	err := shared.NewConfigurationError("start body", `"Vulcan" is not in the body list`)

	// Assert
	assert.False(t, shared.IsInfeasible(err))
	assert.Equal(t, `invalid start body: "Vulcan" is not in the body list`, err.Error())
	assert.False(t, shared.IsInfeasible(nil))
}

func TestSearchSpaceTooLargeError(t *testing.T) {
	// Arrange
	err := shared.NewSearchSpaceTooLargeError(12, 11)

	// Assert
	assert.Equal(t, 12, err.Bodies)
	assert.Equal(t, 11, err.Limit)
	assert.Equal(t, "search space too large: 12 bodies exceeds limit of 11", err.Error())
}
