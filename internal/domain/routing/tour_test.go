package routing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
)

func TestNewTour_BuildsClosedCycle(t *testing.T) {
	// Act
	tour, err := routing.NewTour("craft", []string{"Earth", "Mars", "Venus"}, []float64{1, 2, 3.5})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "craft", tour.Vehicle())
	assert.Equal(t, "Earth", tour.Start())
	assert.Equal(t, 6.5, tour.Total())
	assert.Equal(t, 6500*time.Millisecond, tour.Duration())
	assert.Equal(t, []string{"Earth", "Mars", "Venus", "Earth"}, tour.Path())
	assert.Equal(t, []routing.Edge{
		{Source: "Earth", Destination: "Mars", Cost: 1},
		{Source: "Mars", Destination: "Venus", Cost: 2},
		{Source: "Venus", Destination: "Earth", Cost: 3.5},
	}, tour.Edges())
	assert.Equal(t, "Tour(craft: Earth → Mars → Venus → Earth, 6.50s)", tour.String())
}

func TestNewTour_RejectsMismatchedLegs(t *testing.T) {
	_, err := routing.NewTour("craft", []string{"Earth", "Mars"}, []float64{1})
	assert.Error(t, err)

	_, err = routing.NewTour("craft", nil, nil)
	assert.Error(t, err)

	_, err = routing.NewTour("craft", []string{"Earth"}, []float64{1})
	assert.Error(t, err)
}

func TestTour_ReturnsCopies(t *testing.T) {
	// Arrange
	tour, err := routing.NewTour("craft", []string{"Earth", "Mars"}, []float64{1, 2})
	require.NoError(t, err)

	// Act
	tour.Bodies()[0] = "Pluto"
	tour.Legs()[0].Duration = 99

	// Assert
	assert.Equal(t, "Earth", tour.Start())
	assert.Equal(t, 1.0, tour.Legs()[0].Duration)
	assert.Equal(t, "Earth → Mars (1.00s)", tour.Legs()[0].String())
}
