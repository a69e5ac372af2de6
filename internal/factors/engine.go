package factors

import (
	"sync"
	"time"

	"github.com/yourusername/courtline/internal/models"
)

// Request carries the query-time facts for one factor computation. GameDate
// is explicit so the engine stays pure and replayable.
type Request struct {
	Opponent string
	GameDate time.Time
	IsHome   bool
	DaysRest int
	StatType models.StatType
}

// Inputs bundles the data slices the engine reads. Logs must be sorted
// ascending by game date; each factor reads an independent slice.
type Inputs struct {
	Logs        []models.GameLog
	Aggregate   *models.SeasonAggregate
	TeamCtx     *models.TeamContext
	OpponentCtx *models.TeamContext
	Injuries    []models.InjuryStatus
}

// Result is the joined output of one engine run
type Result struct {
	SeasonAverage   float64
	RecentForm      float64
	HeadToHeadAvg   float64
	HeadToHeadGames int
	Volatility      float64
	SampleSize      int
	Multipliers     map[string]float64
}

// FactorMap flattens the result into the named factor map attached to a
// projection: the absolute baselines plus every multiplier.
func (r Result) FactorMap() map[string]float64 {
	out := make(map[string]float64, len(r.Multipliers)+2)
	out[FactorSeasonAverage] = r.SeasonAverage
	out[FactorRecentForm] = r.RecentForm
	for name, v := range r.Multipliers {
		out[name] = v
	}
	return out
}

// Engine computes all contextual factors for a request. Stateless and safe
// for concurrent use across requests.
type Engine struct {
	cfg Config
}

// NewEngine creates a factor engine with the given thresholds
func NewEngine(cfg Config) *Engine {
	if cfg.RecentFormGames <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Compute evaluates every factor concurrently and joins the results. Factors
// read independent data slices, so the only synchronization point is the
// final join.
func (e *Engine) Compute(req Request, in Inputs) Result {
	logs := logsBefore(in.Logs, req.GameDate)

	result := Result{
		SampleSize:  len(logs),
		Multipliers: make(map[string]float64, 16),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	set := func(name string, v float64) {
		mu.Lock()
		result.Multipliers[name] = v
		mu.Unlock()
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		season := seasonAverage(logs, req.StatType)
		recent := recentForm(logs, req.StatType, e.cfg.RecentFormGames, e.cfg.FormDecay)
		vol := formVolatility(logs, req.StatType, e.cfg.RecentFormGames)
		mu.Lock()
		result.SeasonAverage = season
		result.RecentForm = recent
		result.Volatility = vol
		if season > 0 {
			result.Multipliers[FactorRecentForm] = clampFactor(recent/season, 0.7, 1.3)
		} else {
			result.Multipliers[FactorRecentForm] = 1.0
		}
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		set(FactorOpponentDefense, opponentDefense(in.OpponentCtx, req.StatType, e.cfg))
		set(FactorPosition, positionDefense(in.OpponentCtx, in.Aggregate, req.StatType, e.cfg))
		set(FactorPace, paceFactor(in.TeamCtx, in.OpponentCtx, e.cfg))
	}()

	go func() {
		defer wg.Done()
		factor, avg, meetings := headToHead(logs, req.StatType, req.Opponent, e.cfg.MinHeadToHead)
		mu.Lock()
		result.HeadToHeadAvg = avg
		result.HeadToHeadGames = meetings
		result.Multipliers[FactorHeadToHead] = factor
		mu.Unlock()
		set(FactorHomeAway, homeAwayFactor(logs, req.StatType, req.IsHome))
	}()

	go func() {
		defer wg.Done()
		set(FactorUsage, usageFactor(in.Aggregate, req.StatType))
		set(FactorTeammateShooting, teammateShootingFactor(in.TeamCtx, req.StatType))
		set(FactorTeamScheme, teamSchemeFactor(in.TeamCtx, req.StatType))
		set(FactorMinutes, minutesFactor(in.Aggregate))
		set(FactorPER, perFactor(in.Aggregate, req.StatType, e.cfg))
		set(FactorHollinger, hollingerFactor(in.Aggregate, req.StatType, e.cfg))
		set(FactorRegressionToMean, regressionToMean(logs, req.StatType))
	}()

	go func() {
		defer wg.Done()
		set(FactorRest, restFactor(req.DaysRest))
		set(FactorInjuryImpact, injuryImpact(in.Injuries))
	}()

	wg.Wait()
	return result
}

// logsBefore drops any log on or after the query date so future games can
// never leak into a historical replay
func logsBefore(logs []models.GameLog, date time.Time) []models.GameLog {
	if date.IsZero() {
		return logs
	}
	out := make([]models.GameLog, 0, len(logs))
	for _, g := range logs {
		if g.GameDate.Before(date) {
			out = append(out, g)
		}
	}
	return out
}
