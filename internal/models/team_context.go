package models

import (
	"time"
)

// League baselines used when a team context row is missing or stale.
const (
	LeagueAveragePace            = 99.5
	LeagueAveragePointsAllowed   = 13.2
	LeagueAverageReboundsAllowed = 5.4
	LeagueAverageAssistsAllowed  = 3.1
)

// TeamContext holds per-team per-season pace and defensive ratings. The rows
// are sourced independently of game logs and may lag behind them.
type TeamContext struct {
	Team              string               `db:"team" json:"team" validate:"required"`
	Season            string               `db:"season" json:"season" validate:"required"`
	Pace              float64              `db:"pace" json:"pace" validate:"gte=0"`
	DefensiveRating   float64              `db:"defensive_rating" json:"defensive_rating" validate:"gte=0"`
	AllowedPerGame    map[StatType]float64 `db:"-" json:"allowed_per_game"`
	AllowedByPosition map[string]float64   `db:"-" json:"allowed_by_position"`
	TeamAssistRate    float64              `db:"team_assist_rate" json:"team_assist_rate" validate:"gte=0"`
	TeamEffFGPct      float64              `db:"team_eff_fg_pct" json:"team_eff_fg_pct" validate:"gte=0,lte=1"`
	UpdatedAt         time.Time            `db:"updated_at" json:"updated_at"`
}

// Allowed returns the per-game amount this team concedes for a stat type,
// falling back to the league average when unknown
func (t *TeamContext) Allowed(stat StatType) float64 {
	if t.AllowedPerGame != nil {
		if v, ok := t.AllowedPerGame[stat]; ok && v > 0 {
			return v
		}
	}
	return LeagueAverageAllowed(stat)
}

// AllowedForPosition returns defense allowed against a specific position,
// falling back to the stat-level figure
func (t *TeamContext) AllowedForPosition(stat StatType, position string) float64 {
	if t.AllowedByPosition != nil {
		if v, ok := t.AllowedByPosition[position]; ok && v > 0 {
			return v
		}
	}
	return t.Allowed(stat)
}

// LeagueAverageAllowed returns the league-wide amount conceded per game for a stat
func LeagueAverageAllowed(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return LeagueAveragePointsAllowed
	case StatRebounds:
		return LeagueAverageReboundsAllowed
	case StatAssists:
		return LeagueAverageAssistsAllowed
	}
	return 0
}
