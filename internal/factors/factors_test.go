package factors

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/courtline/internal/models"
)

func TestRecentFormWeightsNewestHighest(t *testing.T) {
	// two games, decay 0.5: newest weight 1.0, older 0.5
	logs := logsWithPoints(10, 40)
	got := recentForm(logs, models.StatPoints, 2, 0.5)
	assert.InDelta(t, (40*1.0+10*0.5)/1.5, got, 1e-9)
}

func TestRecentFormShortHistory(t *testing.T) {
	logs := logsWithPoints(12, 18)
	// window larger than history shrinks to what exists
	got := recentForm(logs, models.StatPoints, 10, 1.0)
	assert.InDelta(t, 15.0, got, 1e-9)

	assert.Zero(t, recentForm(nil, models.StatPoints, 10, 0.85))
}

func TestSeasonAverage(t *testing.T) {
	assert.InDelta(t, 20.0, seasonAverage(logsWithPoints(10, 20, 30), models.StatPoints), 1e-9)
	assert.Zero(t, seasonAverage(nil, models.StatPoints))
}

func TestFormVolatility(t *testing.T) {
	flat := formVolatility(logsWithPoints(20, 20, 20, 20), models.StatPoints, 4)
	assert.Zero(t, flat)

	swingy := formVolatility(logsWithPoints(10, 30, 10, 30), models.StatPoints, 4)
	assert.InDelta(t, 0.5, swingy, 1e-9)

	assert.Zero(t, formVolatility(logsWithPoints(20), models.StatPoints, 4))
}

func TestRestFactorSteps(t *testing.T) {
	tests := []struct {
		daysRest int
		want     float64
	}{
		{0, 0.8},
		{1, 0.9},
		{2, 1.0},
		{3, 1.05},
		{4, 1.1},
		{9, 1.1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, restFactor(tt.daysRest), "daysRest=%d", tt.daysRest)
	}
}

func TestHomeAwayFactor(t *testing.T) {
	// alternating venues from logsWithPoints: even indexes home
	logs := logsWithPoints(30, 10, 30, 10)

	home := homeAwayFactor(logs, models.StatPoints, true)
	assert.InDelta(t, 1.2, home, 1e-9) // 30/10 clamped to 1.2

	away := homeAwayFactor(logs, models.StatPoints, false)
	assert.InDelta(t, 0.8, away, 1e-9) // 10/30 clamped to 0.8
}

func TestHomeAwayFactorNeedsVenueSamples(t *testing.T) {
	// one home game only
	logs := logsWithPoints(30, 10, 10)
	logs = logs[:2]
	assert.Equal(t, 1.0, homeAwayFactor(logs, models.StatPoints, true))
}

func TestHeadToHead(t *testing.T) {
	logs := logsWithPoints(20, 20, 20, 20)
	logs[1].Opponent = "MIA"
	logs[3].Opponent = "MIA"
	logs[1].Points = 30
	logs[3].Points = 30

	factor, avg, meetings := headToHead(logs, models.StatPoints, "Miami Heat", 2)
	assert.Equal(t, 2, meetings)
	assert.InDelta(t, 30.0, avg, 1e-9)
	assert.InDelta(t, 1.2, factor, 1e-9) // 30/25

	// below the meeting minimum the factor stays neutral
	factor, _, meetings = headToHead(logs, models.StatPoints, "MIA", 3)
	assert.Equal(t, 2, meetings)
	assert.Equal(t, 1.0, factor)
}

func TestInjuryImpact(t *testing.T) {
	assert.Equal(t, 1.0, injuryImpact(nil))

	// significance-driven path, capped at +20%
	heavy := []models.InjuryStatus{{Significance: 1.0}, {Significance: 1.0}, {Significance: 1.0}}
	assert.InDelta(t, 1.20, injuryImpact(heavy), 1e-9)

	one := []models.InjuryStatus{{Significance: 0.5}}
	assert.InDelta(t, 1.04, injuryImpact(one), 1e-9)

	// count fallback when no significance data
	assert.InDelta(t, 1.05, injuryImpact([]models.InjuryStatus{{}}), 1e-9)
	assert.InDelta(t, 1.10, injuryImpact([]models.InjuryStatus{{}, {}}), 1e-9)
	assert.InDelta(t, 1.15, injuryImpact([]models.InjuryStatus{{}, {}, {}}), 1e-9)
}

func TestOpponentDefense(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1.0, opponentDefense(nil, models.StatPoints, cfg))

	soft := &models.TeamContext{AllowedPerGame: map[models.StatType]float64{models.StatPoints: 15.84}}
	assert.InDelta(t, 1.2, opponentDefense(soft, models.StatPoints, cfg), 1e-9)

	wall := &models.TeamContext{AllowedPerGame: map[models.StatType]float64{models.StatPoints: 6.0}}
	assert.InDelta(t, cfg.DefenseFloor, opponentDefense(wall, models.StatPoints, cfg), 1e-9)
}

func TestPositionDefense(t *testing.T) {
	cfg := DefaultConfig()
	opponent := &models.TeamContext{
		AllowedPerGame:    map[models.StatType]float64{models.StatPoints: 13.2},
		AllowedByPosition: map[string]float64{"PG": 14.52},
	}
	aggregate := &models.SeasonAggregate{Position: "PG"}

	assert.InDelta(t, 1.1, positionDefense(opponent, aggregate, models.StatPoints, cfg), 1e-9)
	assert.Equal(t, 1.0, positionDefense(opponent, nil, models.StatPoints, cfg))
	assert.Equal(t, 1.0, positionDefense(nil, aggregate, models.StatPoints, cfg))
}

func TestPaceFactorTiers(t *testing.T) {
	cfg := DefaultConfig()

	fast := &models.TeamContext{Pace: 108}
	assert.Equal(t, 1.25, paceFactor(fast, fast, cfg))

	slow := &models.TeamContext{Pace: 90}
	assert.Equal(t, 0.78, paceFactor(slow, slow, cfg))

	// one missing side falls back to league pace: (108+99.5)/2 = 103.75
	assert.Equal(t, 1.15, paceFactor(fast, nil, cfg))

	// no pace data at all stays exactly neutral
	assert.Equal(t, 1.0, paceFactor(nil, nil, cfg))
}

func TestUsageFactorAssistsOnly(t *testing.T) {
	aggregate := &models.SeasonAggregate{UsagePct: 0.28}

	assert.Equal(t, 1.0, usageFactor(aggregate, models.StatPoints))
	assert.InDelta(t, 1.15, usageFactor(aggregate, models.StatAssists), 1e-9)
	assert.Equal(t, 1.0, usageFactor(nil, models.StatAssists))
}

func TestTeammateShootingFactor(t *testing.T) {
	team := &models.TeamContext{TeamEffFGPct: 0.57}
	assert.InDelta(t, 0.57/models.DefaultEffectiveFGPct, teammateShootingFactor(team, models.StatAssists), 1e-9)
	assert.Equal(t, 1.0, teammateShootingFactor(team, models.StatPoints))
	assert.Equal(t, 1.0, teammateShootingFactor(nil, models.StatAssists))
}

func TestMinutesFactor(t *testing.T) {
	starter := &models.SeasonAggregate{MinutesPerGame: 36}
	assert.InDelta(t, 1.25, minutesFactor(starter), 1e-9) // 36/24 clamped

	bench := &models.SeasonAggregate{MinutesPerGame: 12}
	assert.InDelta(t, 0.7, minutesFactor(bench), 1e-9) // 0.5 clamped up

	assert.Equal(t, 1.0, minutesFactor(nil))
}

func TestPERFactor(t *testing.T) {
	cfg := DefaultConfig()

	star := &models.SeasonAggregate{PER: 28}
	assert.InDelta(t, 1.03, perFactor(star, models.StatPoints, cfg), 1e-9)

	average := &models.SeasonAggregate{PER: 15}
	assert.Equal(t, 1.0, perFactor(average, models.StatPoints, cfg))

	assert.Equal(t, 1.0, perFactor(star, models.StatRebounds, cfg))
}

func TestHollingerFactor(t *testing.T) {
	cfg := DefaultConfig()

	playmaker := &models.SeasonAggregate{AssistRatio: 35}
	assert.InDelta(t, 1.03, hollingerFactor(playmaker, models.StatAssists, cfg), 1e-9)
	assert.Equal(t, 1.0, hollingerFactor(playmaker, models.StatPoints, cfg))
}

func TestRegressionToMean(t *testing.T) {
	// extreme mean with extreme variance triggers the full shrink
	swingy := logsWithPoints(50, 5, 55, 4, 60, 3, 50, 6)
	assert.Equal(t, 0.90, regressionToMean(swingy, models.StatPoints))

	steady := logsWithPoints(20, 21, 19, 20, 22, 20)
	assert.Equal(t, 1.0, regressionToMean(steady, models.StatPoints))

	assert.Equal(t, 1.0, regressionToMean(logsWithPoints(50, 5), models.StatPoints))
}

func TestClampFactor(t *testing.T) {
	assert.Equal(t, 0.8, clampFactor(0.5, 0.8, 1.2))
	assert.Equal(t, 1.2, clampFactor(1.9, 0.8, 1.2))
	assert.Equal(t, 1.05, clampFactor(1.05, 0.8, 1.2))
}

func TestNormalizeTeam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Boston Celtics", "BOS"},
		{"  los angeles lakers ", "LAL"},
		{"GSW", "GSW"},
		{"bkn", "BKN"},
		{"New Jersey Nets", "BKN"},
		{"Unknown Club", "UNKNOWN CLUB"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTeam(tt.in), "input %q", tt.in)
	}
}

func TestSameTeam(t *testing.T) {
	assert.True(t, SameTeam("Miami Heat", "MIA"))
	assert.False(t, SameTeam("MIA", "BOS"))
}

func TestLeagueTeams(t *testing.T) {
	teams := LeagueTeams()

	assert.Len(t, teams, 30)
	assert.True(t, sort.StringsAreSorted(teams))
	assert.Contains(t, teams, "BOS")
	assert.Contains(t, teams, "GSW")
}
