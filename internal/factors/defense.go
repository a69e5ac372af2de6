package factors

import (
	"github.com/yourusername/courtline/internal/models"
)

// opponentDefense is the opponent's allowed-per-game for the stat divided by
// the league average, clamped to the configured band. Neutral when the
// opponent context is missing.
func opponentDefense(opponent *models.TeamContext, stat models.StatType, cfg Config) float64 {
	if opponent == nil {
		return 1.0
	}
	leagueAvg := models.LeagueAverageAllowed(stat)
	if leagueAvg == 0 {
		return 1.0
	}
	ratio := opponent.Allowed(stat) / leagueAvg
	return clampFactor(ratio, cfg.DefenseFloor, cfg.DefenseCeiling)
}

// positionDefense refines the defensive factor by the player's listed
// position when the opponent publishes positional splits. Neutral otherwise.
func positionDefense(opponent *models.TeamContext, aggregate *models.SeasonAggregate, stat models.StatType, cfg Config) float64 {
	if opponent == nil || aggregate == nil || aggregate.Position == "" {
		return 1.0
	}
	if opponent.AllowedByPosition == nil {
		return 1.0
	}
	statLevel := opponent.Allowed(stat)
	if statLevel == 0 {
		return 1.0
	}
	positional := opponent.AllowedForPosition(stat, aggregate.Position)
	return clampFactor(positional/statLevel, cfg.DefenseFloor, cfg.DefenseCeiling)
}

func clampFactor(v, floor, ceiling float64) float64 {
	if v < floor {
		return floor
	}
	if v > ceiling {
		return ceiling
	}
	return v
}
