package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/models"
)

func logsWithPoints(points ...float64) []models.GameLog {
	base := time.Date(2026, 1, 1, 19, 0, 0, 0, time.UTC)
	logs := make([]models.GameLog, len(points))
	for i, p := range points {
		logs[i] = models.GameLog{
			Opponent: "BOS",
			GameDate: base.AddDate(0, 0, i*2),
			IsHome:   i%2 == 0,
			Points:   p,
		}
	}
	return logs
}

func TestEngineComputeProducesAllFactors(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	logs := logsWithPoints(20, 22, 25, 18, 24, 26, 21, 23)

	result := engine.Compute(Request{
		Opponent: "Boston Celtics",
		GameDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsHome:   true,
		DaysRest: 2,
		StatType: models.StatPoints,
	}, Inputs{Logs: logs})

	assert.Equal(t, 8, result.SampleSize)
	assert.InDelta(t, 22.375, result.SeasonAverage, 1e-9)
	assert.Greater(t, result.RecentForm, 0.0)

	// every named multiplier is present even with sparse inputs
	for _, name := range AllFactorNames() {
		if name == FactorSeasonAverage {
			continue
		}
		_, ok := result.Multipliers[name]
		assert.True(t, ok, "missing factor %s", name)
	}
}

func TestEngineComputeExcludesFutureGames(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	logs := logsWithPoints(10, 10, 10, 10, 50, 50)

	// cutoff between the 10s and the 50s
	cutoff := logs[4].GameDate

	result := engine.Compute(Request{
		Opponent: "BOS",
		GameDate: cutoff,
		StatType: models.StatPoints,
	}, Inputs{Logs: logs})

	assert.Equal(t, 4, result.SampleSize)
	assert.InDelta(t, 10.0, result.SeasonAverage, 1e-9)
}

func TestEngineComputeEmptyHistory(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Compute(Request{
		Opponent: "BOS",
		StatType: models.StatPoints,
	}, Inputs{})

	assert.Zero(t, result.SampleSize)
	assert.Zero(t, result.SeasonAverage)
	assert.Equal(t, 1.0, result.Multipliers[FactorRecentForm])
	assert.Equal(t, 1.0, result.Multipliers[FactorOpponentDefense])
	assert.Equal(t, 1.0, result.Multipliers[FactorHeadToHead])
}

func TestEngineComputeZeroDateKeepsAllLogs(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	logs := logsWithPoints(10, 20, 30)

	result := engine.Compute(Request{
		Opponent: "BOS",
		StatType: models.StatPoints,
	}, Inputs{Logs: logs})

	assert.Equal(t, 3, result.SampleSize)
}

func TestFactorMap(t *testing.T) {
	r := Result{
		SeasonAverage: 22.5,
		RecentForm:    24.0,
		Multipliers:   map[string]float64{FactorPace: 1.08, FactorRest: 0.9},
	}

	m := r.FactorMap()
	assert.Equal(t, 22.5, m[FactorSeasonAverage])
	assert.Equal(t, 24.0, m[FactorRecentForm])
	assert.Equal(t, 1.08, m[FactorPace])
	assert.Equal(t, 0.9, m[FactorRest])
}

func TestNewEngineRejectsEmptyConfig(t *testing.T) {
	engine := NewEngine(Config{})
	require.NotNil(t, engine)
	assert.Equal(t, DefaultConfig().RecentFormGames, engine.cfg.RecentFormGames)
}

func TestEngineComputeDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	logs := logsWithPoints(20, 22, 25, 18, 24, 26, 21, 23)
	req := Request{
		Opponent: "BOS",
		GameDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsHome:   true,
		DaysRest: 2,
		StatType: models.StatPoints,
	}
	in := Inputs{Logs: logs, Aggregate: &models.SeasonAggregate{UsagePct: 0.28, PER: 22, Position: "SG"}}

	first := engine.Compute(req, in)
	second := engine.Compute(req, in)

	// the concurrent fan-out must not introduce any run-to-run variance
	assert.Equal(t, first, second)
}
