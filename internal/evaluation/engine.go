package evaluation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/features"
	"github.com/yourusername/courtline/internal/ml"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/projection"
)

// Config controls a walk-forward evaluation run
type Config struct {
	StatType   models.StatType
	StartDate  time.Time
	EndDate    time.Time
	WindowDays int
	StepDays   int
	// MinGamesPerPlayer is how much history a player needs before their
	// games count toward accuracy
	MinGamesPerPlayer int
}

// DefaultConfig returns sensible evaluation settings
func DefaultConfig(stat models.StatType, start, end time.Time) Config {
	return Config{
		StatType:          stat,
		StartDate:         start,
		EndDate:           end,
		WindowDays:        14,
		StepDays:          14,
		MinGamesPerPlayer: 5,
	}
}

// WindowResult holds accuracy for one walk-forward window
type WindowResult struct {
	WindowID int       `json:"window_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Metrics  Metrics   `json:"metrics"`
}

// Result is the full output of an evaluation run
type Result struct {
	StatType         models.StatType `json:"stat_type"`
	Windows          []WindowResult  `json:"windows"`
	Overall          Metrics         `json:"overall"`
	ConsistencyScore float64         `json:"consistency_score"`
}

// Engine replays stored game logs through the projection pipeline
type Engine struct {
	engine    *factors.Engine
	combiner  *projection.Combiner
	predictor ml.Predictor
	featNames []string
	logger    *logrus.Logger
}

// NewEngine creates an evaluation engine. predictor may be nil to evaluate
// the pure statistical baseline.
func NewEngine(factorEngine *factors.Engine, combiner *projection.Combiner, predictor ml.Predictor, featureNames []string, log *logrus.Logger) *Engine {
	return &Engine{
		engine:    factorEngine,
		combiner:  combiner,
		predictor: predictor,
		featNames: featureNames,
		logger:    log,
	}
}

// Run replays every qualifying game in the configured date range, window by
// window, projecting each game from only the history before it
func (e *Engine) Run(ctx context.Context, cfg Config, logs []models.GameLog) (*Result, error) {
	if cfg.WindowDays <= 0 || cfg.StepDays <= 0 {
		return nil, fmt.Errorf("window and step must be positive")
	}
	if !cfg.EndDate.After(cfg.StartDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	byPlayer := make(map[uuid.UUID][]models.GameLog)
	for _, log := range logs {
		byPlayer[log.PlayerID] = append(byPlayer[log.PlayerID], log)
	}
	for id := range byPlayer {
		history := byPlayer[id]
		sort.Slice(history, func(i, j int) bool {
			return history[i].GameDate.Before(history[j].GameDate)
		})
		byPlayer[id] = history
	}

	result := &Result{StatType: cfg.StatType}
	overall := &accumulator{}
	windowID := 0

	for winStart := cfg.StartDate; winStart.Before(cfg.EndDate); winStart = winStart.AddDate(0, 0, cfg.StepDays) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		winEnd := winStart.AddDate(0, 0, cfg.WindowDays)
		if winEnd.After(cfg.EndDate) {
			winEnd = cfg.EndDate
		}

		acc := &accumulator{}
		for _, history := range byPlayer {
			e.replayPlayer(cfg, history, winStart, winEnd, acc, overall)
		}

		windowID++
		result.Windows = append(result.Windows, WindowResult{
			WindowID: windowID,
			Start:    winStart,
			End:      winEnd,
			Metrics:  acc.metrics(winStart, winEnd),
		})
	}

	result.Overall = overall.metrics(cfg.StartDate, cfg.EndDate)
	result.ConsistencyScore = ConsistencyScore(result.Windows)

	e.logger.WithFields(logrus.Fields{
		"stat_type":   cfg.StatType,
		"samples":     result.Overall.Samples,
		"mae":         result.Overall.MAE,
		"rmse":        result.Overall.RMSE,
		"consistency": result.ConsistencyScore,
	}).Info("Walk-forward evaluation completed")

	return result, nil
}

func (e *Engine) replayPlayer(cfg Config, history []models.GameLog, winStart, winEnd time.Time, acc, overall *accumulator) {
	for i, game := range history {
		if game.GameDate.Before(winStart) || !game.GameDate.Before(winEnd) {
			continue
		}
		if i < cfg.MinGamesPerPlayer {
			continue
		}

		prior := history[:i]
		projected := e.projectGame(cfg.StatType, prior, game)
		actual := game.StatValue(cfg.StatType)

		acc.add(projected, actual)
		overall.add(projected, actual)
	}
}

func (e *Engine) projectGame(stat models.StatType, prior []models.GameLog, game models.GameLog) float64 {
	daysRest := 0
	if len(prior) > 0 {
		daysRest = int(game.GameDate.Sub(prior[len(prior)-1].GameDate).Hours()/24) - 1
		if daysRest < 0 {
			daysRest = 0
		}
	}

	req := factors.Request{
		Opponent: game.Opponent,
		GameDate: game.GameDate,
		IsHome:   game.IsHome,
		DaysRest: daysRest,
		StatType: stat,
	}

	result := e.engine.Compute(req, factors.Inputs{Logs: prior})

	estimate := 0.0
	valid := false
	if e.predictor != nil && len(e.featNames) > 0 {
		vector := features.NewBuilder(features.Inputs{Logs: prior}, features.Context{
			Opponent: game.Opponent,
			GameDate: game.GameDate,
			IsHome:   game.IsHome,
			DaysRest: daysRest,
			StatType: stat,
		}).Build(e.featNames)

		if v, err := e.predictor.Predict(vector.Values); err == nil {
			estimate = v
			valid = true
		}
	}

	value, _ := e.combiner.Combine(projection.CombineInput{
		StatType:      stat,
		Factors:       result,
		ModelEstimate: estimate,
		ModelValid:    valid,
	})
	return value
}
