package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Tour search outcomes used as the "outcome" label
const (
	OutcomeFound     = "found"
	OutcomeExcluded  = "excluded"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// PlannerMetricsCollector handles feasibility and tour search metrics
type PlannerMetricsCollector struct {
	// Feasibility metrics
	safeVehicles     *prometheus.GaugeVec
	excludedVehicles *prometheus.GaugeVec
	exclusionsByBody *prometheus.CounterVec

	// Search metrics
	searchesTotal      *prometheus.CounterVec
	searchDuration     *prometheus.HistogramVec
	permutationsPriced *prometheus.CounterVec
	bestTourSeconds    *prometheus.GaugeVec
}

// NewPlannerMetricsCollector creates a new planner metrics collector.
// An empty namespace falls back to DefaultNamespace.
func NewPlannerMetricsCollector(namespace string) *PlannerMetricsCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &PlannerMetricsCollector{
		safeVehicles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "safe_vehicles",
				Help:      "Vehicles able to leave and land on every body, by preset",
			},
			[]string{"preset"},
		),

		excludedVehicles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "excluded_vehicles",
				Help:      "Vehicles failing at least one body, by preset",
			},
			[]string{"preset"},
		),

		exclusionsByBody: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "exclusions_total",
				Help:      "Vehicle exclusions by the body and phase that failed",
			},
			[]string{"preset", "body", "phase"},
		),

		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tour_searches_total",
				Help:      "Per-vehicle tour searches by outcome",
			},
			[]string{"preset", "outcome"},
		),

		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tour_search_duration_seconds",
				Help:      "Wall-clock time of one per-vehicle exhaustive search",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"preset"},
		),

		permutationsPriced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "permutations_priced_total",
				Help:      "Candidate tour orderings priced",
			},
			[]string{"preset"},
		),

		bestTourSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_tour_seconds",
				Help:      "Total duration of the fastest tour, by preset and vehicle",
			},
			[]string{"preset", "vehicle"},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.safeVehicles,
		c.excludedVehicles,
		c.exclusionsByBody,
		c.searchesTotal,
		c.searchDuration,
		c.permutationsPriced,
		c.bestTourSeconds,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordFeasibility records the safe/excluded split of one evaluation
func (c *PlannerMetricsCollector) RecordFeasibility(preset string, safeVehicles, excludedVehicles int) {
	c.safeVehicles.WithLabelValues(preset).Set(float64(safeVehicles))
	c.excludedVehicles.WithLabelValues(preset).Set(float64(excludedVehicles))
}

// RecordTourSearch records one per-vehicle search
func (c *PlannerMetricsCollector) RecordTourSearch(preset, vehicle, outcome string, seconds float64, permutations int) {
	c.searchesTotal.WithLabelValues(preset, outcome).Inc()

	// Only completed searches have a meaningful duration and permutation count
	if outcome == OutcomeFound {
		c.searchDuration.WithLabelValues(preset).Observe(seconds)
		c.permutationsPriced.WithLabelValues(preset).Add(float64(permutations))
	}
}

// RecordBestTour records the winning tour of a scenario
func (c *PlannerMetricsCollector) RecordBestTour(preset, vehicle string, tourSeconds float64) {
	c.bestTourSeconds.WithLabelValues(preset, vehicle).Set(tourSeconds)
}

// RecordExclusion records a vehicle dropped at a body
func (c *PlannerMetricsCollector) RecordExclusion(preset, body, phase string) {
	c.exclusionsByBody.WithLabelValues(preset, body, phase).Inc()
}
