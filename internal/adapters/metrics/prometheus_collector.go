package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultNamespace prefixes metric names when none is configured
	DefaultNamespace = "spacetour"
	// Subsystem for tour planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording scenario outcomes.
// Application code records through the package-level functions below, which
// are no-ops until a collector is installed.
type PlannerMetricsRecorder interface {
	RecordFeasibility(preset string, safeVehicles, excludedVehicles int)
	RecordTourSearch(preset, vehicle, outcome string, seconds float64, permutations int)
	RecordBestTour(preset, vehicle string, tourSeconds float64)
	RecordExclusion(preset, body, phase string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// ResetRegistry disables metrics and forgets the global collector
func ResetRegistry() {
	Registry = nil
	globalPlannerCollector = nil
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// WriteTextfile dumps every registered metric in Prometheus text format,
// for node_exporter's textfile collector or a CI artifact
func WriteTextfile(path string) error {
	if Registry == nil {
		return fmt.Errorf("metrics are not enabled")
	}
	return prometheus.WriteToTextfile(path, Registry)
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordFeasibility records a feasibility evaluation globally
func RecordFeasibility(preset string, safeVehicles, excludedVehicles int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordFeasibility(preset, safeVehicles, excludedVehicles)
	}
}

// RecordTourSearch records one per-vehicle tour search globally
func RecordTourSearch(preset, vehicle, outcome string, seconds float64, permutations int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordTourSearch(preset, vehicle, outcome, seconds, permutations)
	}
}

// RecordBestTour records the winning tour of a scenario globally
func RecordBestTour(preset, vehicle string, tourSeconds float64) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordBestTour(preset, vehicle, tourSeconds)
	}
}

// RecordExclusion records a vehicle dropped at a body globally
func RecordExclusion(preset, body, phase string) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordExclusion(preset, body, phase)
	}
}
