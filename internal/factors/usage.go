package factors

import (
	"github.com/yourusername/courtline/internal/models"
)

// The factors in this file are assist-centric: playmaking output depends on
// the player's share of possessions and on whether teammates convert the
// shots they are set up for.

// usageFactor scales with the player's usage percentage relative to the
// league baseline. Only applied to assists.
func usageFactor(aggregate *models.SeasonAggregate, stat models.StatType) float64 {
	if stat != models.StatAssists || aggregate == nil || aggregate.UsagePct <= 0 {
		return 1.0
	}
	return clampFactor(aggregate.UsagePct/models.DefaultUsagePct, 0.85, 1.15)
}

// teammateShootingFactor scales assists by the team's effective FG%: better
// finishing converts more potential assists into recorded ones.
func teammateShootingFactor(team *models.TeamContext, stat models.StatType) float64 {
	if stat != models.StatAssists || team == nil || team.TeamEffFGPct <= 0 {
		return 1.0
	}
	return clampFactor(team.TeamEffFGPct/models.DefaultEffectiveFGPct, 0.9, 1.1)
}

// teamSchemeFactor scales assists by the team's assist-to-made-FG ratio, a
// proxy for how much the offense runs through passing.
func teamSchemeFactor(team *models.TeamContext, stat models.StatType) float64 {
	if stat != models.StatAssists || team == nil || team.TeamAssistRate <= 0 {
		return 1.0
	}
	// League-typical share of made field goals that are assisted
	const leagueAssistRate = 0.60
	return clampFactor(team.TeamAssistRate/leagueAssistRate, 0.9, 1.1)
}

// minutesFactor nudges any stat by expected playing time relative to the
// league rotation baseline
func minutesFactor(aggregate *models.SeasonAggregate) float64 {
	if aggregate == nil || aggregate.MinutesPerGame <= 0 {
		return 1.0
	}
	return clampFactor(aggregate.MinutesPerGame/models.DefaultMinutesPerGame, 0.7, 1.25)
}
