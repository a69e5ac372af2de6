package factors

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// perFactor grants a small boost to scoring projections for players whose
// PER clears the configured threshold. The boost is capped at ±3% and only
// affects points.
func perFactor(aggregate *models.SeasonAggregate, stat models.StatType, cfg Config) float64 {
	if stat != models.StatPoints || aggregate == nil || aggregate.PER <= 0 {
		return 1.0
	}
	if aggregate.PER < cfg.PERBoostThreshold {
		return 1.0
	}
	boost := 1.0 + (aggregate.PER-cfg.PERBoostThreshold)*0.003
	return clampFactor(boost, 0.97, 1.03)
}

// hollingerFactor applies the analogous boost for assists using Hollinger's
// assist ratio. Only affects assists.
func hollingerFactor(aggregate *models.SeasonAggregate, stat models.StatType, cfg Config) float64 {
	if stat != models.StatAssists || aggregate == nil || aggregate.AssistRatio <= 0 {
		return 1.0
	}
	if aggregate.AssistRatio < cfg.HollingerThreshold {
		return 1.0
	}
	boost := 1.0 + (aggregate.AssistRatio-cfg.HollingerThreshold)*0.002
	return clampFactor(boost, 0.97, 1.03)
}

// regressionToMean shrinks the projection when the player's historical mean
// and variance are both extreme, countering outlier overfitting. The factor
// dips at most 10% below neutral.
func regressionToMean(logs []models.GameLog, stat models.StatType) float64 {
	if len(logs) < 5 {
		return 1.0
	}

	mean := seasonAverage(logs, stat)
	leagueMean := models.DefaultStatPerGame(stat)
	if leagueMean == 0 || mean == 0 {
		return 1.0
	}

	variance := 0.0
	for _, g := range logs {
		d := g.StatValue(stat) - mean
		variance += d * d
	}
	variance /= float64(len(logs))
	stddev := math.Sqrt(variance)

	// Extreme: mean more than double the league average with swingy games
	meanRatio := mean / leagueMean
	cv := stddev / mean
	if meanRatio > 2.0 && cv > 0.45 {
		return 0.90
	}
	if meanRatio > 1.6 && cv > 0.55 {
		return 0.94
	}
	return 1.0
}
