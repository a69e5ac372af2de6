package projection

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// ConfidenceInput carries the signals the confidence score is derived from
type ConfidenceInput struct {
	ModelRSquared   float64
	LowQualityModel bool
	SampleSize      int
	Multipliers     map[string]float64
	Edge            float64
	HasLine         bool
}

// ConfidenceScore derives a [0,1] confidence from model fit, sample size,
// factor clustering around neutral, and edge magnitude when a line exists.
func ConfidenceScore(in ConfidenceInput) float64 {
	score := confidenceBase(in.ModelRSquared)
	if in.LowQualityModel {
		score -= 0.10
	}

	// More games, more trust: +0.005 per game up to +0.10
	sampleBoost := float64(in.SampleSize) * 0.005
	if sampleBoost > 0.10 {
		sampleBoost = 0.10
	}
	score += sampleBoost

	// Factors clustered near 1.0 mean the signals agree
	deviation := meanFactorDeviation(in.Multipliers)
	switch {
	case deviation < 0.05:
		score += 0.08
	case deviation < 0.10:
		score += 0.04
	case deviation > 0.25:
		score -= 0.05
	}

	if in.HasLine {
		edgeBoost := math.Abs(in.Edge) * 0.02
		if edgeBoost > 0.10 {
			edgeBoost = 0.10
		}
		score += edgeBoost
	}

	return clamp01(score)
}

// confidenceBase maps validation R² to a starting confidence band
func confidenceBase(rSquared float64) float64 {
	switch {
	case rSquared >= 0.8:
		return 0.85
	case rSquared >= 0.7:
		return 0.75
	case rSquared >= 0.6:
		return 0.65
	case rSquared >= 0.5:
		return 0.55
	default:
		return 0.40
	}
}

// RiskInput carries the signals behind the composite risk score
type RiskInput struct {
	ModelRSquared float64
	Edge          float64
	MarketLine    *float64
	Volatility    float64
	SampleSize    int
}

// Composite component weights; they sum to 1
const (
	riskWeightModel     = 0.30
	riskWeightEdgeSize  = 0.25
	riskWeightProximity = 0.20
	riskWeightForm      = 0.15
	riskWeightSample    = 0.10
)

// RiskScore computes the 0-100 composite risk and its level band
func RiskScore(in RiskInput) (float64, models.RiskLevel) {
	modelRisk := clamp01(1-in.ModelRSquared) * 100

	// Without a line there is no bet to size, so edge components sit at the
	// midpoint rather than dominating either direction
	edgeSizeRisk := 50.0
	proximityRisk := 50.0
	if in.MarketLine != nil {
		absEdge := math.Abs(in.Edge)
		edgeSizeRisk = (1 - math.Min(absEdge/3.0, 1)) * 100

		line := math.Max(math.Abs(*in.MarketLine), 1)
		relative := absEdge / line
		proximityRisk = (1 - math.Min(relative/0.10, 1)) * 100
	}

	formRisk := math.Min(in.Volatility/0.6, 1) * 100

	sampleRisk := 0.0
	if in.SampleSize < 20 {
		sampleRisk = float64(20-in.SampleSize) / 20 * 100
	}

	score := riskWeightModel*modelRisk +
		riskWeightEdgeSize*edgeSizeRisk +
		riskWeightProximity*proximityRisk +
		riskWeightForm*formRisk +
		riskWeightSample*sampleRisk

	return score, riskLevel(score)
}

func riskLevel(score float64) models.RiskLevel {
	switch {
	case score <= 35:
		return models.RiskLow
	case score <= 65:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// meanFactorDeviation averages |factor - 1| across the multiplier set
func meanFactorDeviation(multipliers map[string]float64) float64 {
	if len(multipliers) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range multipliers {
		sum += math.Abs(f - 1)
	}
	return sum / float64(len(multipliers))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
