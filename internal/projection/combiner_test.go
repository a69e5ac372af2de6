package projection

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/models"
)

func neutralResult(seasonAvg, recent float64) factors.Result {
	return factors.Result{
		SeasonAverage: seasonAvg,
		RecentForm:    recent,
		Multipliers:   map[string]float64{},
	}
}

func TestCombineBlendsBaselines(t *testing.T) {
	c := NewCombiner(nil)

	value, base := c.Combine(CombineInput{
		StatType: models.StatPoints,
		Factors:  neutralResult(20, 24),
	})

	assert.InDelta(t, 22.0, base, 1e-9)
	assert.InDelta(t, 22.0, value, 1e-9)
}

func TestCombineFoldsHeadToHead(t *testing.T) {
	c := NewCombiner(nil)
	f := neutralResult(20, 24)
	f.HeadToHeadGames = 3
	f.HeadToHeadAvg = 30

	_, base := c.Combine(CombineInput{StatType: models.StatPoints, Factors: f})
	assert.InDelta(t, 0.4*20+0.4*24+0.2*30, base, 1e-9)
}

func TestCombineBlendsModelEstimate(t *testing.T) {
	c := NewCombiner(nil)

	_, base := c.Combine(CombineInput{
		StatType:      models.StatPoints,
		Factors:       neutralResult(20, 20),
		ModelEstimate: 26,
		ModelValid:    true,
	})
	assert.InDelta(t, 23.0, base, 1e-9)
}

func TestCombineIgnoresUnusableModelEstimate(t *testing.T) {
	c := NewCombiner(nil)

	for _, estimate := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		_, base := c.Combine(CombineInput{
			StatType:      models.StatPoints,
			Factors:       neutralResult(20, 20),
			ModelEstimate: estimate,
			ModelValid:    true,
		})
		assert.InDelta(t, 20.0, base, 1e-9)
	}
}

func TestCombineAppliesWeightedFactors(t *testing.T) {
	c := NewCombiner(Weights{factors.FactorRest: 1.0})
	f := neutralResult(20, 20)
	f.Multipliers[factors.FactorRest] = 0.8

	value, _ := c.Combine(CombineInput{StatType: models.StatPoints, Factors: f})
	assert.InDelta(t, 16.0, value, 1e-9)
}

func TestCombineExponentDampensFactor(t *testing.T) {
	c := NewCombiner(Weights{factors.FactorRest: 0.5})
	f := neutralResult(100, 100)
	f.Multipliers[factors.FactorRest] = 0.81

	value, _ := c.Combine(CombineInput{StatType: models.StatPoints, Factors: f})
	assert.InDelta(t, 90.0, value, 1e-9)
}

func TestCombineZeroSeasonAverage(t *testing.T) {
	c := NewCombiner(nil)
	value, base := c.Combine(CombineInput{StatType: models.StatPoints, Factors: neutralResult(0, 15)})
	assert.Zero(t, value)
	assert.Zero(t, base)
}

func TestCombineSkipsMissingAndNonPositiveFactors(t *testing.T) {
	c := NewCombiner(Weights{factors.FactorRest: 1.0, factors.FactorPace: 1.0})
	f := neutralResult(20, 20)
	f.Multipliers[factors.FactorPace] = -2 // non-positive factors are skipped

	value, _ := c.Combine(CombineInput{StatType: models.StatPoints, Factors: f})
	assert.InDelta(t, 20.0, value, 1e-9)
}

func TestCombineRoundsPerStat(t *testing.T) {
	c := NewCombiner(Weights{})

	points, _ := c.Combine(CombineInput{StatType: models.StatPoints, Factors: neutralResult(20.12, 20.12)})
	assert.Equal(t, 20.1, points)

	rebounds, _ := c.Combine(CombineInput{StatType: models.StatRebounds, Factors: neutralResult(7.6, 7.6)})
	assert.Equal(t, 8.0, rebounds)
}

func TestRoundingPlaces(t *testing.T) {
	assert.Equal(t, int32(1), RoundingPlaces(models.StatPoints))
	assert.Equal(t, int32(0), RoundingPlaces(models.StatRebounds))
	assert.Equal(t, int32(0), RoundingPlaces(models.StatAssists))
}

func TestWeightsFromConfig(t *testing.T) {
	// viper delivers lowercased keys
	configured := map[string]float64{
		"recentform":      0.5,
		"opponentdefense": 0.3,
		"notbasketball":   0.9,
	}

	w := WeightsFromConfig(configured)
	assert.Equal(t, 0.5, w[factors.FactorRecentForm])
	assert.Equal(t, 0.3, w[factors.FactorOpponentDefense])
	assert.Len(t, w, 2)
}

func TestWeightsFromConfigFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, DefaultWeights(), WeightsFromConfig(nil))
	assert.Equal(t, DefaultWeights(), WeightsFromConfig(map[string]float64{"junk": 1}))
}

func TestCombineWithComputedFactors(t *testing.T) {
	base := time.Date(2026, 1, 1, 19, 0, 0, 0, time.UTC)
	points := []float64{15, 18, 12, 20, 16}
	logs := make([]models.GameLog, len(points))
	for i, p := range points {
		logs[i] = models.GameLog{
			Opponent: "BOS",
			GameDate: base.AddDate(0, 0, i*2),
			IsHome:   i%2 == 0,
			Points:   p,
		}
	}

	// a defense allowing 19% more points than league average
	opponent := &models.TeamContext{
		AllowedPerGame: map[models.StatType]float64{
			models.StatPoints: 1.19 * models.LeagueAverageAllowed(models.StatPoints),
		},
	}

	engine := factors.NewEngine(factors.DefaultConfig())
	result := engine.Compute(factors.Request{
		Opponent: "MIA",
		GameDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsHome:   true,
		DaysRest: 2,
		StatType: models.StatPoints,
	}, factors.Inputs{Logs: logs, OpponentCtx: opponent})

	require.InDelta(t, 1.19, result.Multipliers[factors.FactorOpponentDefense], 1e-9)
	require.InDelta(t, 16.2, result.SeasonAverage, 1e-9)

	value, _ := NewCombiner(DefaultWeights()).Combine(CombineInput{
		StatType: models.StatPoints,
		Factors:  result,
	})

	// the favorable matchup lifts the 16.2 average without running away
	assert.GreaterOrEqual(t, value, 16.0)
	assert.LessOrEqual(t, value, 18.0)
}
