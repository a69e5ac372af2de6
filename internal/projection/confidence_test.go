package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/courtline/internal/models"
)

func TestConfidenceBase(t *testing.T) {
	tests := []struct {
		rSquared float64
		want     float64
	}{
		{0.9, 0.85},
		{0.8, 0.85},
		{0.75, 0.75},
		{0.65, 0.65},
		{0.55, 0.55},
		{0.3, 0.40},
		{-1, 0.40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, confidenceBase(tt.rSquared), "r2=%v", tt.rSquared)
	}
}

func TestConfidenceScoreComposition(t *testing.T) {
	// strong model, big sample, neutral factors
	score := ConfidenceScore(ConfidenceInput{
		ModelRSquared: 0.82,
		SampleSize:    40,
		Multipliers:   map[string]float64{"a": 1.0, "b": 1.02},
	})
	// 0.85 base + 0.10 sample cap + 0.08 agreement
	assert.InDelta(t, 1.0, score, 1e-9)

	// weak model, tiny sample, scattered factors
	score = ConfidenceScore(ConfidenceInput{
		ModelRSquared: 0.1,
		SampleSize:    4,
		Multipliers:   map[string]float64{"a": 1.4, "b": 0.6},
	})
	// 0.40 base + 0.02 sample - 0.05 disagreement
	assert.InDelta(t, 0.37, score, 1e-9)
}

func TestConfidenceScorePenalizesLowQualityModel(t *testing.T) {
	in := ConfidenceInput{ModelRSquared: 0.82, SampleSize: 0}
	healthy := ConfidenceScore(in)

	in.LowQualityModel = true
	degraded := ConfidenceScore(in)
	assert.InDelta(t, 0.10, healthy-degraded, 1e-9)
}

func TestConfidenceScoreEdgeBoostNeedsLine(t *testing.T) {
	base := ConfidenceInput{ModelRSquared: 0.2, SampleSize: 10, Edge: 3}

	without := ConfidenceScore(base)

	base.HasLine = true
	with := ConfidenceScore(base)
	assert.InDelta(t, 0.06, with-without, 1e-9)

	// boost caps at 0.10 regardless of edge size
	base.Edge = 50
	capped := ConfidenceScore(base)
	assert.InDelta(t, 0.10, capped-without, 1e-9)
}

func TestConfidenceScoreClamped(t *testing.T) {
	score := ConfidenceScore(ConfidenceInput{
		ModelRSquared: 0.95,
		SampleSize:    100,
		Multipliers:   map[string]float64{"a": 1.0},
		HasLine:       true,
		Edge:          10,
	})
	assert.Equal(t, 1.0, score)
}

func TestRiskScoreBands(t *testing.T) {
	line := 25.0

	// tight model, big edge, calm form, deep sample
	low, level := RiskScore(RiskInput{
		ModelRSquared: 0.9,
		Edge:          3.5,
		MarketLine:    &line,
		Volatility:    0.1,
		SampleSize:    40,
	})
	assert.Equal(t, models.RiskLow, level)
	assert.Less(t, low, 35.0)

	// weak model, hairline edge, swingy form, thin sample
	high, level := RiskScore(RiskInput{
		ModelRSquared: 0.05,
		Edge:          0.2,
		MarketLine:    &line,
		Volatility:    0.7,
		SampleSize:    3,
	})
	assert.Equal(t, models.RiskHigh, level)
	assert.Greater(t, high, 65.0)
}

func TestRiskScoreWithoutLine(t *testing.T) {
	// edge components sit at the midpoint when no line exists
	score, level := RiskScore(RiskInput{
		ModelRSquared: 0.5,
		Volatility:    0.3,
		SampleSize:    30,
	})
	// 0.30*50 + 0.25*50 + 0.20*50 + 0.15*50 + 0.10*0
	assert.InDelta(t, 45.0, score, 1e-9)
	assert.Equal(t, models.RiskMedium, level)
}

func TestRiskLevelBoundaries(t *testing.T) {
	assert.Equal(t, models.RiskLow, riskLevel(35))
	assert.Equal(t, models.RiskMedium, riskLevel(35.01))
	assert.Equal(t, models.RiskMedium, riskLevel(65))
	assert.Equal(t, models.RiskHigh, riskLevel(65.01))
}

func TestMeanFactorDeviation(t *testing.T) {
	assert.Zero(t, meanFactorDeviation(nil))
	assert.InDelta(t, 0.15, meanFactorDeviation(map[string]float64{"a": 1.1, "b": 0.8}), 1e-9)
}
