package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/adapters/metrics"
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
)

type pingCommand struct{}

func enableMetrics(t *testing.T) *metrics.PlannerMetricsCollector {
	t.Helper()
	metrics.InitRegistry()
	t.Cleanup(metrics.ResetRegistry)

	collector := metrics.NewPlannerMetricsCollector("test")
	require.NoError(t, collector.Register())
	metrics.SetGlobalPlannerCollector(collector)
	return collector
}

func TestRecordFunctions_NoOpWhenDisabled(t *testing.T) {
	// Arrange
	metrics.ResetRegistry()

	// Assert
	assert.False(t, metrics.IsEnabled())
	assert.NotPanics(t, func() {
		metrics.RecordFeasibility("extreme", 3, 6)
		metrics.RecordTourSearch("extreme", "F-1", metrics.OutcomeFound, 0.5, 100)
		metrics.RecordBestTour("extreme", "F-1", 1234)
		metrics.RecordExclusion("extreme", "Venus", "ASCENT")
	})
	assert.Error(t, metrics.WriteTextfile(filepath.Join(t.TempDir(), "out.prom")))
}

func TestPlannerMetrics_RecordAndDump(t *testing.T) {
	// Arrange
	enableMetrics(t)
	path := filepath.Join(t.TempDir(), "spacetour.prom")

	// Act
	metrics.RecordFeasibility("extreme", 3, 6)
	metrics.RecordTourSearch("extreme", "F-1", metrics.OutcomeFound, 0.5, 362880)
	metrics.RecordTourSearch("extreme", "Draco", metrics.OutcomeExcluded, 0, 0)
	metrics.RecordBestTour("extreme", "F-1", 1234.5)
	metrics.RecordExclusion("extreme", "Venus", "ASCENT")
	err := metrics.WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	assert.True(t, metrics.IsEnabled())
	searches, err := testutil.GatherAndCount(metrics.GetRegistry(), "test_planner_tour_searches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, searches)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `test_planner_safe_vehicles{preset="extreme"} 3`)
	assert.Contains(t, text, `test_planner_permutations_priced_total{preset="extreme"} 362880`)
	assert.Contains(t, text, `test_planner_best_tour_seconds{preset="extreme",vehicle="F-1"} 1234.5`)
	assert.Contains(t, text, `test_planner_exclusions_total{body="Venus",phase="ASCENT",preset="extreme"} 1`)
}

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	// Arrange
	enableMetrics(t)
	collector := metrics.NewCommandMetricsCollector("test")
	require.NoError(t, collector.Register())

	m := mediator.NewMediator()
	m.Use(metrics.PrometheusMiddleware(collector))
	calls := 0
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			calls++
			if calls == 2 {
				return nil, shared.NewConfigurationError("preset", "unknown")
			}
			return "pong", nil
		})))

	// Act
	response, err := m.Send(context.Background(), &pingCommand{})
	_, failErr := m.Send(context.Background(), &pingCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", response)
	assert.Error(t, failErr)
	commands, err := testutil.GatherAndCount(metrics.GetRegistry(), "test_planner_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, commands)
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	m.Use(metrics.PrometheusMiddleware(nil))
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return "pong", nil
		})))

	// Act
	response, err := m.Send(context.Background(), &pingCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", response)
}
