// Package features builds fixed-order numeric vectors from raw game logs and
// aggregates. Every lookup resolves through a prioritized source chain and
// bottoms out at a documented default, never NaN.
package features

import (
	"github.com/yourusername/courtline/internal/models"
)

// Canonical feature names. Order here is the canonical ordering a model is
// trained and scored with; a persisted model pins its own copy.
const (
	FeatSeasonAverage   = "season_average"
	FeatRecentForm5     = "recent_form_5"
	FeatRecentForm10    = "recent_form_10"
	FeatMinutesPerGame  = "minutes_per_game"
	FeatUsagePct        = "usage_pct"
	FeatPER             = "per"
	FeatEffectiveFGPct  = "effective_fg_pct"
	FeatGamesPlayed     = "games_played"
	FeatVenueAverage    = "venue_average"
	FeatHeadToHeadAvg   = "head_to_head_average"
	FeatOpponentAllowed = "opponent_allowed"
	FeatOpponentPace    = "opponent_pace"
	FeatTeamPace        = "team_pace"
	FeatDaysRest        = "days_rest"
	FeatIsHome          = "is_home"
)

// CanonicalNames returns the feature ordering used for newly trained models
func CanonicalNames() []string {
	return []string{
		FeatSeasonAverage,
		FeatRecentForm5,
		FeatRecentForm10,
		FeatMinutesPerGame,
		FeatUsagePct,
		FeatPER,
		FeatEffectiveFGPct,
		FeatGamesPlayed,
		FeatVenueAverage,
		FeatHeadToHeadAvg,
		FeatOpponentAllowed,
		FeatOpponentPace,
		FeatTeamPace,
		FeatDaysRest,
		FeatIsHome,
	}
}

// DefaultValue returns the documented fallback for a feature when every
// source in its chain comes up empty or non-finite
func DefaultValue(name string, stat models.StatType) float64 {
	switch name {
	case FeatSeasonAverage, FeatRecentForm5, FeatRecentForm10, FeatVenueAverage, FeatHeadToHeadAvg:
		return models.DefaultStatPerGame(stat)
	case FeatMinutesPerGame:
		return models.DefaultMinutesPerGame
	case FeatUsagePct:
		return models.DefaultUsagePct
	case FeatPER:
		return models.DefaultPER
	case FeatEffectiveFGPct:
		return models.DefaultEffectiveFGPct
	case FeatOpponentAllowed:
		return models.LeagueAverageAllowed(stat)
	case FeatOpponentPace, FeatTeamPace:
		return models.LeagueAveragePace
	case FeatDaysRest:
		return 2
	case FeatGamesPlayed, FeatIsHome:
		return 0
	}
	return 0
}
