package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordProjectionIssued(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordProjectionIssued("points", "OVER", 0.012)
	})
}

func TestRecordModelFallback(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name     string
		statType string
		reason   string
	}{
		{
			name:     "no active model",
			statType: "points",
			reason:   "no_active_model",
		},
		{
			name:     "payload decode failure",
			statType: "rebounds",
			reason:   "decode_failed",
		},
		{
			name:     "prediction error",
			statType: "assists",
			reason:   "predict_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordModelFallback(tt.statType, tt.reason)
			})
		})
	}
}

func TestUpdateModelMetrics(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name     string
		rSquared float64
		mae      float64
	}{
		{
			name:     "strong model",
			rSquared: 0.72,
			mae:      2.1,
		},
		{
			name:     "weak model",
			rSquared: 0.05,
			mae:      6.3,
		},
		{
			name:     "degenerate model",
			rSquared: -0.4,
			mae:      9.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateModelMetrics("points", "forest", tt.rSquared, tt.mae)
			})
		})
	}
}

func TestRecordCircuitBreakerTrip(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCircuitBreakerTrip("stats_api")
	})
}

func TestRecordTrainingRun(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordTrainingRun("points", 42.5)
	})
}

func TestFactorAndOutcomeCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordFactorFallback("opponent_defense")
	})

	assert.NotPanics(t, func() {
		RecordOutcome()
	})

	assert.NotPanics(t, func() {
		UpdateCacheHitRate("stats_api", 0.85)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordProjectionIssued(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordProjectionIssued("points", "OVER", 0.01)
	}
}

func BenchmarkRecordFactorFallback(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordFactorFallback("recent_form")
	}
}
