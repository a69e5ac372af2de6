package features

import (
	"math"
	"time"

	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/models"
)

// Vector is an ordered numeric array with its parallel name array
type Vector struct {
	Names  []string
	Values []float64
}

// Context carries the query-time facts for one projection request
type Context struct {
	Opponent string
	GameDate time.Time
	IsHome   bool
	DaysRest int
	StatType models.StatType
}

// Inputs bundles the historical data the builder reads. Logs must be sorted
// ascending by game date. Any field may be nil or empty; resolution falls
// through the chain.
type Inputs struct {
	Logs        []models.GameLog
	Aggregate   *models.SeasonAggregate
	TeamCtx     *models.TeamContext
	OpponentCtx *models.TeamContext
}

// Builder resolves named features against the supplied inputs. Pure: the same
// inputs and context always produce the same vector.
type Builder struct {
	inputs Inputs
	qctx   Context
}

// NewBuilder creates a builder for one request
func NewBuilder(inputs Inputs, qctx Context) *Builder {
	return &Builder{inputs: inputs, qctx: qctx}
}

// Build produces a vector matching the supplied canonical name list exactly.
// Every value passes through sanitize, so NaN/Inf never escapes.
func (b *Builder) Build(names []string) Vector {
	values := make([]float64, len(names))
	for i, name := range names {
		values[i] = b.sanitize(name, b.resolve(name))
	}
	return Vector{Names: append([]string(nil), names...), Values: values}
}

func (b *Builder) resolve(name string) float64 {
	stat := b.qctx.StatType
	switch name {
	case FeatSeasonAverage:
		return b.seasonAverage(stat)
	case FeatRecentForm5:
		return b.recentAverage(stat, 5)
	case FeatRecentForm10:
		return b.recentAverage(stat, 10)
	case FeatMinutesPerGame:
		return b.minutesPerGame()
	case FeatUsagePct:
		if b.inputs.Aggregate != nil && b.inputs.Aggregate.UsagePct > 0 {
			return b.inputs.Aggregate.UsagePct
		}
	case FeatPER:
		if b.inputs.Aggregate != nil && b.inputs.Aggregate.PER != 0 {
			return b.inputs.Aggregate.PER
		}
	case FeatEffectiveFGPct:
		return b.effectiveFGPct()
	case FeatGamesPlayed:
		return float64(len(b.inputs.Logs))
	case FeatVenueAverage:
		return b.venueAverage(stat)
	case FeatHeadToHeadAvg:
		return b.headToHeadAverage(stat)
	case FeatOpponentAllowed:
		if b.inputs.OpponentCtx != nil {
			return b.inputs.OpponentCtx.Allowed(stat)
		}
	case FeatOpponentPace:
		if b.inputs.OpponentCtx != nil && b.inputs.OpponentCtx.Pace > 0 {
			return b.inputs.OpponentCtx.Pace
		}
	case FeatTeamPace:
		if b.inputs.TeamCtx != nil && b.inputs.TeamCtx.Pace > 0 {
			return b.inputs.TeamCtx.Pace
		}
	case FeatDaysRest:
		return float64(b.qctx.DaysRest)
	case FeatIsHome:
		if b.qctx.IsHome {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// seasonAverage: aggregate row, then mean over all logs, then league default
func (b *Builder) seasonAverage(stat models.StatType) float64 {
	if b.inputs.Aggregate != nil && b.inputs.Aggregate.GamesPlayed > 0 {
		if v := b.inputs.Aggregate.StatPerGame(stat); v > 0 {
			return v
		}
	}
	return b.recentAverage(stat, len(b.inputs.Logs))
}

// recentAverage: arithmetic mean of the last n logs before the query date
func (b *Builder) recentAverage(stat models.StatType, n int) float64 {
	logs := b.logsBefore()
	if len(logs) == 0 || n <= 0 {
		return math.NaN()
	}
	if n > len(logs) {
		n = len(logs)
	}
	sum := 0.0
	for _, g := range logs[len(logs)-n:] {
		sum += g.StatValue(stat)
	}
	return sum / float64(n)
}

func (b *Builder) minutesPerGame() float64 {
	if b.inputs.Aggregate != nil && b.inputs.Aggregate.MinutesPerGame > 0 {
		return b.inputs.Aggregate.MinutesPerGame
	}
	logs := b.logsBefore()
	if len(logs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range logs {
		sum += g.Minutes
	}
	return sum / float64(len(logs))
}

func (b *Builder) effectiveFGPct() float64 {
	if b.inputs.Aggregate != nil && b.inputs.Aggregate.EffectiveFGPct > 0 {
		return b.inputs.Aggregate.EffectiveFGPct
	}
	logs := b.logsBefore()
	made, att := 0.0, 0.0
	for _, g := range logs {
		made += g.FieldGoalsMade + 0.5*g.ThreePointsMade
		att += g.FieldGoalsAtt
	}
	if att == 0 {
		return math.NaN()
	}
	return made / att
}

// venueAverage: mean at the upcoming venue (home games when the query is
// home, away games otherwise), falling back to the overall average
func (b *Builder) venueAverage(stat models.StatType) float64 {
	logs := b.logsBefore()
	sum, count := 0.0, 0
	for _, g := range logs {
		if g.IsHome == b.qctx.IsHome {
			sum += g.StatValue(stat)
			count++
		}
	}
	if count == 0 {
		return b.recentAverage(stat, len(logs))
	}
	return sum / float64(count)
}

// headToHeadAverage: mean vs this opponent; requires at least two prior
// meetings, otherwise falls through to the season average
func (b *Builder) headToHeadAverage(stat models.StatType) float64 {
	logs := b.logsBefore()
	sum, count := 0.0, 0
	for _, g := range logs {
		if factors.SameTeam(g.Opponent, b.qctx.Opponent) {
			sum += g.StatValue(stat)
			count++
		}
	}
	if count < 2 {
		return b.seasonAverage(stat)
	}
	return sum / float64(count)
}

// logsBefore filters out any log on or after the query date, keeping the
// builder safe against future leakage
func (b *Builder) logsBefore() []models.GameLog {
	if b.qctx.GameDate.IsZero() {
		return b.inputs.Logs
	}
	out := make([]models.GameLog, 0, len(b.inputs.Logs))
	for _, g := range b.inputs.Logs {
		if g.GameDate.Before(b.qctx.GameDate) {
			out = append(out, g)
		}
	}
	return out
}

func (b *Builder) sanitize(name string, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultValue(name, b.qctx.StatType)
	}
	return v
}
