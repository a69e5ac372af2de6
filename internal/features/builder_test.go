package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/models"
)

func gameLogs(points ...float64) []models.GameLog {
	base := time.Date(2026, 1, 5, 19, 0, 0, 0, time.UTC)
	logs := make([]models.GameLog, len(points))
	for i, p := range points {
		logs[i] = models.GameLog{
			Opponent:       "BOS",
			GameDate:       base.AddDate(0, 0, i*2),
			IsHome:         i%2 == 0,
			Points:         p,
			Minutes:        30,
			FieldGoalsMade: 8,
			FieldGoalsAtt:  16,
		}
	}
	return logs
}

func TestBuildMatchesRequestedOrder(t *testing.T) {
	b := NewBuilder(Inputs{Logs: gameLogs(20, 22, 24)}, Context{StatType: models.StatPoints, IsHome: true, DaysRest: 3})

	names := []string{FeatDaysRest, FeatIsHome, FeatGamesPlayed}
	v := b.Build(names)

	require.Equal(t, names, v.Names)
	assert.Equal(t, []float64{3, 1, 3}, v.Values)
}

func TestBuildNeverEmitsNonFinite(t *testing.T) {
	// no logs, no aggregate, no contexts: everything resolves via defaults
	b := NewBuilder(Inputs{}, Context{StatType: models.StatRebounds})
	v := b.Build(CanonicalNames())

	require.Len(t, v.Values, len(CanonicalNames()))
	for i, val := range v.Values {
		assert.False(t, val != val, "feature %s is NaN", v.Names[i])
	}
	assert.Equal(t, models.DefaultReboundsPerGame, v.Values[0])
}

func TestBuildPrefersAggregateRow(t *testing.T) {
	aggregate := &models.SeasonAggregate{
		GamesPlayed:    40,
		PointsPerGame:  25.5,
		MinutesPerGame: 34,
		UsagePct:       0.31,
	}
	b := NewBuilder(Inputs{Logs: gameLogs(10, 10), Aggregate: aggregate}, Context{StatType: models.StatPoints})

	v := b.Build([]string{FeatSeasonAverage, FeatMinutesPerGame, FeatUsagePct})
	assert.Equal(t, []float64{25.5, 34, 0.31}, v.Values)
}

func TestBuildFallsBackToLogAverages(t *testing.T) {
	b := NewBuilder(Inputs{Logs: gameLogs(10, 20, 30)}, Context{StatType: models.StatPoints})

	v := b.Build([]string{FeatSeasonAverage, FeatMinutesPerGame, FeatEffectiveFGPct})
	assert.InDelta(t, 20.0, v.Values[0], 1e-9)
	assert.InDelta(t, 30.0, v.Values[1], 1e-9)
	assert.InDelta(t, 0.5, v.Values[2], 1e-9)
}

func TestRecentFormWindows(t *testing.T) {
	b := NewBuilder(Inputs{Logs: gameLogs(1, 1, 1, 1, 1, 10, 10, 10, 10, 10)}, Context{StatType: models.StatPoints})

	v := b.Build([]string{FeatRecentForm5, FeatRecentForm10})
	assert.InDelta(t, 10.0, v.Values[0], 1e-9)
	assert.InDelta(t, 5.5, v.Values[1], 1e-9)
}

func TestBuildExcludesFutureGames(t *testing.T) {
	logs := gameLogs(10, 10, 50, 50)
	cutoff := logs[2].GameDate

	b := NewBuilder(Inputs{Logs: logs}, Context{StatType: models.StatPoints, GameDate: cutoff})
	v := b.Build([]string{FeatSeasonAverage, FeatGamesPlayed})

	assert.InDelta(t, 10.0, v.Values[0], 1e-9)
	// games_played counts all supplied logs, not the filtered window
	assert.Equal(t, 4.0, v.Values[1])
}

func TestVenueAverage(t *testing.T) {
	// even indexes home: home 30s, away 10s
	b := NewBuilder(Inputs{Logs: gameLogs(30, 10, 30, 10)}, Context{StatType: models.StatPoints, IsHome: true})
	v := b.Build([]string{FeatVenueAverage})
	assert.InDelta(t, 30.0, v.Values[0], 1e-9)

	away := NewBuilder(Inputs{Logs: gameLogs(30, 10, 30, 10)}, Context{StatType: models.StatPoints, IsHome: false})
	v = away.Build([]string{FeatVenueAverage})
	assert.InDelta(t, 10.0, v.Values[0], 1e-9)
}

func TestHeadToHeadAverageRequiresTwoMeetings(t *testing.T) {
	logs := gameLogs(20, 20, 20, 20)
	logs[1].Opponent = "MIA"
	logs[1].Points = 40

	// one meeting falls through to the season average
	b := NewBuilder(Inputs{Logs: logs}, Context{StatType: models.StatPoints, Opponent: "MIA"})
	v := b.Build([]string{FeatHeadToHeadAvg})
	assert.InDelta(t, 25.0, v.Values[0], 1e-9)

	logs[3].Opponent = "MIA"
	logs[3].Points = 40
	b = NewBuilder(Inputs{Logs: logs}, Context{StatType: models.StatPoints, Opponent: "MIA"})
	v = b.Build([]string{FeatHeadToHeadAvg})
	assert.InDelta(t, 40.0, v.Values[0], 1e-9)
}

func TestHeadToHeadAverageNormalizesOpponent(t *testing.T) {
	// ingested logs carry full franchise names while requests use codes
	logs := gameLogs(20, 20, 20, 20)
	logs[1].Opponent = "Los Angeles Lakers"
	logs[1].Points = 30
	logs[3].Opponent = "LA Lakers"
	logs[3].Points = 34

	b := NewBuilder(Inputs{Logs: logs}, Context{StatType: models.StatPoints, Opponent: "LAL"})
	v := b.Build([]string{FeatHeadToHeadAvg})
	assert.InDelta(t, 32.0, v.Values[0], 1e-9)
}

func TestOpponentFeatures(t *testing.T) {
	opponent := &models.TeamContext{
		Pace:           103.5,
		AllowedPerGame: map[models.StatType]float64{models.StatPoints: 14.8},
	}
	b := NewBuilder(Inputs{OpponentCtx: opponent}, Context{StatType: models.StatPoints})

	v := b.Build([]string{FeatOpponentAllowed, FeatOpponentPace, FeatTeamPace})
	assert.Equal(t, 14.8, v.Values[0])
	assert.Equal(t, 103.5, v.Values[1])
	assert.Equal(t, models.LeagueAveragePace, v.Values[2])
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, models.DefaultPointsPerGame, DefaultValue(FeatSeasonAverage, models.StatPoints))
	assert.Equal(t, models.DefaultAssistsPerGame, DefaultValue(FeatRecentForm5, models.StatAssists))
	assert.Equal(t, models.LeagueAverageAllowed(models.StatRebounds), DefaultValue(FeatOpponentAllowed, models.StatRebounds))
	assert.Equal(t, 2.0, DefaultValue(FeatDaysRest, models.StatPoints))
	assert.Equal(t, 0.0, DefaultValue(FeatIsHome, models.StatPoints))
	assert.Equal(t, 0.0, DefaultValue("unknown", models.StatPoints))
}
