// Package metrics provides a centralized Prometheus metrics registry for the
// projection engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProjectionsIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "projections_issued_total",
		Help:      "Total number of projections issued",
	}, []string{"stat_type", "recommendation"})
	ProjectionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "projection_errors_total",
		Help:      "Total number of failed projection requests",
	})
	ModelFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "model_fallbacks_total",
		Help:      "Total projections served on the statistical baseline only",
	}, []string{"stat_type", "reason"})
	FactorFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "factor_fallbacks_total",
		Help:      "Total factor computations that fell back to a neutral value",
	}, []string{"factor"})
	CircuitBreakerTripsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of data source circuit breaker trips",
	}, []string{"source"})
	OutcomesRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "outcomes_recorded_total",
		Help:      "Total number of projection outcomes reconciled",
	})
)

// Gauge metrics
var (
	ActiveModels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "active_models",
		Help:      "Number of currently active trained models",
	})
	ModelRSquared = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "model_r_squared",
		Help:      "Validation R squared of the active model per stat type",
	}, []string{"stat_type", "model_type"})
	ModelMAE = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "model_mae",
		Help:      "Validation mean absolute error of the active model per stat type",
	}, []string{"stat_type", "model_type"})
	DataSourceCacheHitRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "datasource_cache_hit_rate",
		Help:      "Cache hit rate per data source",
	}, []string{"source"})
)

// Histogram metrics
var (
	ProjectionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtline",
		Name:      "projection_latency_seconds",
		Help:      "Latency of end-to-end projection requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	TrainingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "courtline",
		Name:      "training_duration_seconds",
		Help:      "Duration of model training runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	}, []string{"stat_type"})
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtline",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of data ingestion runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ProjectionsIssuedTotal)
		registry.MustRegister(ProjectionErrorsTotal)
		registry.MustRegister(ModelFallbacksTotal)
		registry.MustRegister(FactorFallbacksTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(OutcomesRecordedTotal)

		// Register gauge metrics
		registry.MustRegister(ActiveModels)
		registry.MustRegister(ModelRSquared)
		registry.MustRegister(ModelMAE)
		registry.MustRegister(DataSourceCacheHitRate)

		// Register histogram metrics
		registry.MustRegister(ProjectionLatency)
		registry.MustRegister(TrainingDuration)
		registry.MustRegister(IngestionDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordProjectionIssued records a successfully issued projection.
func RecordProjectionIssued(statType, recommendation string, durationSeconds float64) {
	ProjectionsIssuedTotal.WithLabelValues(statType, recommendation).Inc()
	ProjectionLatency.Observe(durationSeconds)
}

// RecordProjectionError records a failed projection request.
func RecordProjectionError() {
	ProjectionErrorsTotal.Inc()
}

// RecordModelFallback records a projection served without a trained model.
func RecordModelFallback(statType, reason string) {
	ModelFallbacksTotal.WithLabelValues(statType, reason).Inc()
}

// RecordFactorFallback records a factor falling back to its neutral value.
func RecordFactorFallback(factor string) {
	FactorFallbacksTotal.WithLabelValues(factor).Inc()
}

// RecordCircuitBreakerTrip records a data source circuit breaker trip.
func RecordCircuitBreakerTrip(source string) {
	CircuitBreakerTripsTotal.WithLabelValues(source).Inc()
}

// RecordOutcome records a reconciled projection outcome.
func RecordOutcome() {
	OutcomesRecordedTotal.Inc()
}

// RecordTrainingRun records a completed training run for one stat type.
func RecordTrainingRun(statType string, durationSeconds float64) {
	TrainingDuration.WithLabelValues(statType).Observe(durationSeconds)
}

// RecordIngestionRun records a completed ingestion run.
func RecordIngestionRun(durationSeconds float64) {
	IngestionDuration.Observe(durationSeconds)
}

// UpdateActiveModels updates the active model count gauge.
func UpdateActiveModels(count float64) {
	ActiveModels.Set(count)
}

// UpdateModelMetrics updates the validation metric gauges for one stat type.
func UpdateModelMetrics(statType, modelType string, rSquared, mae float64) {
	ModelRSquared.WithLabelValues(statType, modelType).Set(rSquared)
	ModelMAE.WithLabelValues(statType, modelType).Set(mae)
}

// UpdateCacheHitRate updates the cache hit rate gauge for one source.
func UpdateCacheHitRate(source string, rate float64) {
	DataSourceCacheHitRate.WithLabelValues(source).Set(rate)
}
