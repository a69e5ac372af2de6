package factors

import (
	"github.com/yourusername/courtline/internal/models"
)

// paceFactor averages both teams' pace and maps the result through the
// configured tier table. With no pace data at all the factor is exactly
// neutral; a single missing side falls back to league average pace.
func paceFactor(team, opponent *models.TeamContext, cfg Config) float64 {
	teamPace := 0.0
	if team != nil && team.Pace > 0 {
		teamPace = team.Pace
	}
	oppPace := 0.0
	if opponent != nil && opponent.Pace > 0 {
		oppPace = opponent.Pace
	}
	if teamPace == 0 && oppPace == 0 {
		return 1.0
	}
	if teamPace == 0 {
		teamPace = models.LeagueAveragePace
	}
	if oppPace == 0 {
		oppPace = models.LeagueAveragePace
	}

	combined := (teamPace + oppPace) / 2
	for _, tier := range cfg.PaceTiers {
		if combined >= tier.MinPace {
			return tier.Factor
		}
	}
	return 1.0
}
