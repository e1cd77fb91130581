package scenario_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/adapters/metrics"
	"github.com/koussay97/space-travel-TSP/internal/application/logging"
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/application/scenario"
	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
	"github.com/koussay97/space-travel-TSP/test/helpers"
)

// stubSource serves one preset named "test"
type stubSource struct {
	bodies   []shared.Body
	vehicles []*fleet.Vehicle
}

func (s *stubSource) Bodies(preset string) ([]shared.Body, error) {
	if preset != "test" {
		return nil, shared.NewConfigurationError("preset", fmt.Sprintf("%q is not one of [test]", preset))
	}
	return s.bodies, nil
}

func (s *stubSource) Vehicles() []*fleet.Vehicle {
	return s.vehicles
}

func (s *stubSource) Vehicle(name string) (*fleet.Vehicle, error) {
	return fleet.FindVehicle(s.vehicles, name)
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+message)
}

func (l *recordingLogger) contains(fragment string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

func newSource(t *testing.T) *stubSource {
	t.Helper()
	return &stubSource{
		bodies: []shared.Body{
			helpers.NewBody(t, shared.Earth, 9.81, 149.6, 100, 3000),
			helpers.NewBody(t, shared.Mercury, 3.7, 57.9, 100, 0),
			helpers.NewBody(t, shared.Venus, 8.87, 108.2, 250, 4000),
			helpers.NewBody(t, shared.Mars, 3.71, 227.9, 125, 3500),
			helpers.NewBody(t, shared.Jupiter, 24.79, 778.5, 5000, 2500),
		},
		vehicles: []*fleet.Vehicle{
			helpers.NewVehicle(t, "weak", 100, 1000, nil),
			helpers.NewVehicle(t, "slow", 1000, 1e6, nil),
			helpers.NewVehicle(t, "fast", 1000, 1e7, nil),
		},
	}
}

func newMediator(t *testing.T, source scenario.BodySource) mediator.Mediator {
	t.Helper()
	m := mediator.NewMediator()
	calculator := navigation.NewKinematicCalculator()
	optimizer := routing.NewTourOptimizer(calculator, routing.DefaultOptions())
	require.NoError(t, scenario.RegisterHandlers(m, source, calculator, optimizer))
	return m
}

func TestRunScenario_ExcludesThenFindsBestTour(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	ctx := logging.WithLogger(context.Background(), logger)
	m := newMediator(t, newSource(t))

	// Act
	resp, err := m.Send(ctx, &scenario.RunScenarioCommand{Preset: "test"})

	// Assert
	require.NoError(t, err)
	result := resp.(*scenario.RunScenarioResponse)
	assert.True(t, strings.HasPrefix(result.RunID, "run-test-"))
	assert.Equal(t, []string{"slow", "fast"}, result.Feasibility.SafeVehicles)

	exclusions := result.Exclusions()
	require.Len(t, exclusions, 1)
	assert.Equal(t, "weak", exclusions[0].Vehicle)
	assert.Equal(t, shared.Jupiter, exclusions[0].Body)

	require.NotNil(t, result.Result.Best)
	assert.Equal(t, "fast", result.Result.Best.Vehicle())
	assert.Equal(t, shared.Earth, result.Result.Best.Start())
	assert.Len(t, result.Result.Tours, 2)
	assert.Nil(t, result.Result.TourFor("weak"))

	assert.True(t, logger.contains("INFO [Scenario] Best tour: Tour(fast: Earth"))
	assert.True(t, logger.contains("WARN [Feasibility] weak excluded at Jupiter"))
}

// tickingSolver advances the clock by one minute per search
type tickingSolver struct {
	inner routing.TourSolver
	clock *shared.MockClock
}

func (s *tickingSolver) OptimizeTour(ctx context.Context, request *routing.TourRequest) (*routing.Tour, error) {
	s.clock.Advance(time.Minute)
	return s.inner.OptimizeTour(ctx, request)
}

func TestRunScenario_ElapsedUsesClock(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	solver := &tickingSolver{inner: routing.NewTourOptimizer(nil, routing.DefaultOptions()), clock: clock}
	handler := scenario.NewRunScenarioHandler(newSource(t), navigation.NewFeasibilityEvaluator(nil), solver, clock)

	// Act
	resp, err := handler.Handle(context.Background(), &scenario.RunScenarioCommand{Preset: "test"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, resp.(*scenario.RunScenarioResponse).Elapsed)
}

func TestRunScenario_VehicleSelection(t *testing.T) {
	// Arrange
	m := newMediator(t, newSource(t))

	// Act
	resp, err := m.Send(context.Background(), &scenario.RunScenarioCommand{
		Preset:    "test",
		StartBody: shared.Mars,
		Vehicles:  []string{"slow"},
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*scenario.RunScenarioResponse)
	assert.Equal(t, []string{"slow"}, result.Feasibility.Table.Vehicles())
	require.NotNil(t, result.Result.Best)
	assert.Equal(t, "slow", result.Result.Best.Vehicle())
	assert.Equal(t, shared.Mars, result.Result.Best.Start())
	assert.Empty(t, result.Exclusions())
}

func TestRunScenario_NoSafeVehicle(t *testing.T) {
	// Arrange
	m := newMediator(t, newSource(t))

	// Act
	resp, err := m.Send(context.Background(), &scenario.RunScenarioCommand{Preset: "test", Vehicles: []string{"weak"}})

	// Assert
	require.NoError(t, err)
	result := resp.(*scenario.RunScenarioResponse)
	assert.Nil(t, result.Result.Best)
	assert.Empty(t, result.Result.Tours)
	assert.Len(t, result.Exclusions(), 1)
}

func TestRunScenario_ConfigurationErrors(t *testing.T) {
	m := newMediator(t, newSource(t))
	tests := []struct {
		name    string
		command *scenario.RunScenarioCommand
	}{
		{"unknown preset", &scenario.RunScenarioCommand{Preset: "turbo"}},
		{"unknown vehicle", &scenario.RunScenarioCommand{Preset: "test", Vehicles: []string{"ghost"}}},
		{"duplicate vehicle", &scenario.RunScenarioCommand{Preset: "test", Vehicles: []string{"fast", "fast"}}},
		{"unknown start body", &scenario.RunScenarioCommand{Preset: "test", StartBody: shared.Pluto}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Send(context.Background(), tt.command)

			var configErr *shared.ConfigurationError
			assert.True(t, errors.As(err, &configErr), "got %v", err)
		})
	}
}

func TestRunScenario_CancelledContext(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newMediator(t, newSource(t))

	// Act
	_, err := m.Send(ctx, &scenario.RunScenarioCommand{Preset: "test"})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenario_RecordsMetrics(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(metrics.ResetRegistry)
	collector := metrics.NewPlannerMetricsCollector("test")
	require.NoError(t, collector.Register())
	metrics.SetGlobalPlannerCollector(collector)
	m := newMediator(t, newSource(t))

	// Act
	_, err := m.Send(context.Background(), &scenario.RunScenarioCommand{Preset: "test"})

	// Assert
	require.NoError(t, err)
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "test_planner_best_tour_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(metrics.GetRegistry(), "test_planner_tour_searches_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both searches share the found outcome")

	count, err = testutil.GatherAndCount(metrics.GetRegistry(), "test_planner_exclusions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEvaluateFeasibility_ReportsTable(t *testing.T) {
	// Arrange
	m := newMediator(t, newSource(t))

	// Act
	resp, err := m.Send(context.Background(), &scenario.EvaluateFeasibilityQuery{Preset: "test"})

	// Assert
	require.NoError(t, err)
	result := resp.(*scenario.EvaluateFeasibilityResponse)
	assert.Len(t, result.Bodies, 5)
	assert.Equal(t, []string{"weak", "slow", "fast"}, result.Table.Vehicles())
	assert.False(t, result.Table.IsFeasible("weak", shared.Jupiter))
	assert.True(t, result.Table.IsFeasible("weak", shared.Earth))

	var decelErr *shared.InsufficientDecelerationError
	assert.True(t, errors.As(result.Table.Reason("weak", shared.Jupiter), &decelErr))
}

func TestPlanTour_EarthMarsBreakdown(t *testing.T) {
	// Arrange
	source := &stubSource{
		bodies:   helpers.EarthAndMars(t),
		vehicles: []*fleet.Vehicle{helpers.Falcon9(t)},
	}
	m := newMediator(t, source)

	// Act
	resp, err := m.Send(context.Background(), &scenario.PlanTourQuery{Preset: "test", Vehicle: "SpaceX Merlin 1D (Falcon 9)"})

	// Assert
	require.NoError(t, err)
	result := resp.(*scenario.PlanTourResponse)
	assert.Equal(t, []string{shared.Earth, shared.Mars, shared.Earth}, result.Tour.Path())
	require.Len(t, result.Breakdown, 2)

	sum := 0.0
	for i, timing := range result.Breakdown {
		assert.Equal(t, result.Tour.Legs()[i].From, timing.From)
		assert.Equal(t, result.Tour.Legs()[i].To, timing.To)
		assert.Greater(t, timing.Ascent, 0.0)
		assert.Greater(t, timing.Transit, 0.0)
		assert.Greater(t, timing.Descent, 0.0)
		sum += timing.Total()
	}
	assert.InDelta(t, result.Tour.Total(), sum, 1e-9)
}

func TestPlanTour_UnknownVehicle(t *testing.T) {
	m := newMediator(t, newSource(t))

	_, err := m.Send(context.Background(), &scenario.PlanTourQuery{Preset: "test", Vehicle: "ghost"})

	var configErr *shared.ConfigurationError
	assert.True(t, errors.As(err, &configErr))
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	source := newSource(t)
	calculator := navigation.NewKinematicCalculator()
	optimizer := routing.NewTourOptimizer(calculator, routing.DefaultOptions())

	handlers := []mediator.RequestHandler{
		scenario.NewEvaluateFeasibilityHandler(source, navigation.NewFeasibilityEvaluator(calculator)),
		scenario.NewPlanTourHandler(source, optimizer, calculator),
		scenario.NewRunScenarioHandler(source, navigation.NewFeasibilityEvaluator(calculator), optimizer, nil),
	}
	for _, handler := range handlers {
		_, err := handler.Handle(context.Background(), struct{}{})
		assert.ErrorContains(t, err, "invalid request type")
	}
}
