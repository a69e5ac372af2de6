// Package projection turns a model estimate and a factor set into a final
// projected value with confidence, risk, and a betting recommendation.
package projection

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/models"
)

// Weights maps factor names to their exponents in the multiplicative
// combination. The documented set sums to 1; mass not listed here is carried
// implicitly by the base estimate.
type Weights map[string]float64

// DefaultWeights returns the production factor weights
func DefaultWeights() Weights {
	return Weights{
		factors.FactorRecentForm:       0.20,
		factors.FactorOpponentDefense:  0.18,
		factors.FactorHomeAway:         0.12,
		factors.FactorRest:             0.08,
		factors.FactorInjuryImpact:     0.07,
		factors.FactorHeadToHead:       0.05,
		factors.FactorPER:              0.06,
		factors.FactorPace:             0.05,
		factors.FactorUsage:            0.04,
		factors.FactorTeammateShooting: 0.02,
		factors.FactorTeamScheme:       0.02,
		factors.FactorMinutes:          0.04,
		factors.FactorPosition:         0.03,
		factors.FactorHollinger:        0.02,
		factors.FactorRegressionToMean: 0.02,
	}
}

// RoundingPlaces returns decimal places per stat convention: one decimal for
// the continuous scoring stat, whole numbers for low-volume counting stats.
func RoundingPlaces(stat models.StatType) int32 {
	switch stat {
	case models.StatPoints:
		return 1
	default:
		return 0
	}
}

// CombineInput carries everything the combiner needs for one projection
type CombineInput struct {
	StatType      models.StatType
	Factors       factors.Result
	ModelEstimate float64
	ModelValid    bool
}

// Combiner folds the base estimate and weighted factors into a final value
type Combiner struct {
	weights Weights
}

// NewCombiner creates a combiner; nil weights fall back to the defaults
func NewCombiner(weights Weights) *Combiner {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	return &Combiner{weights: weights}
}

// WeightsFromConfig maps configured weight keys onto canonical factor names.
// Viper lowercases YAML map keys, so matching is case-insensitive. Keys that
// match no factor are dropped.
func WeightsFromConfig(configured map[string]float64) Weights {
	if len(configured) == 0 {
		return DefaultWeights()
	}

	canonical := make(map[string]string, 16)
	for _, name := range factors.AllFactorNames() {
		canonical[strings.ToLower(name)] = name
	}

	weights := make(Weights, len(configured))
	for key, value := range configured {
		if name, ok := canonical[strings.ToLower(key)]; ok {
			weights[name] = value
		}
	}
	if len(weights) == 0 {
		return DefaultWeights()
	}
	return weights
}

// Combine computes the final projected value and the base it grew from.
// A season average of exactly 0 means no usable data: the result is exactly
// 0 rather than compounded factor noise.
func (c *Combiner) Combine(in CombineInput) (value, base float64) {
	f := in.Factors
	if f.SeasonAverage == 0 {
		return 0, 0
	}

	// Blend recent form with the season average; fold head-to-head history
	// in when enough meetings exist
	statBase := 0.5*f.SeasonAverage + 0.5*f.RecentForm
	if f.HeadToHeadGames >= 2 && f.HeadToHeadAvg > 0 {
		statBase = 0.4*f.SeasonAverage + 0.4*f.RecentForm + 0.2*f.HeadToHeadAvg
	}

	base = statBase
	if in.ModelValid && isUsable(in.ModelEstimate) {
		base = 0.5*in.ModelEstimate + 0.5*statBase
	}

	value = base
	for name, weight := range c.weights {
		factor, ok := f.Multipliers[name]
		if !ok || factor <= 0 {
			continue
		}
		value *= math.Pow(factor, weight)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = statBase
	}
	if value < 0 {
		value = 0
	}

	return round(value, RoundingPlaces(in.StatType)), base
}

func round(v float64, places int32) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return rounded
}

func isUsable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
