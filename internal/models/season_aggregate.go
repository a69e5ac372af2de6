package models

import (
	"time"

	"github.com/google/uuid"
)

// League-wide fallbacks used when a player has no aggregate row. These are
// documented defaults, never nulls.
const (
	DefaultPointsPerGame   = 13.2
	DefaultReboundsPerGame = 5.4
	DefaultAssistsPerGame  = 3.1
	DefaultMinutesPerGame  = 24.0
	DefaultUsagePct        = 0.19
	DefaultPER             = 15.0
	DefaultEffectiveFGPct  = 0.52
)

// SeasonAggregate holds per-player per-season averaged rates, recomputed
// periodically by the ingestion job.
type SeasonAggregate struct {
	ID              uuid.UUID `db:"id" json:"id" validate:"required"`
	PlayerID        uuid.UUID `db:"player_id" json:"player_id" validate:"required"`
	Season          string    `db:"season" json:"season" validate:"required"`
	GamesPlayed     int       `db:"games_played" json:"games_played" validate:"gte=0"`
	MinutesPerGame  float64   `db:"minutes_per_game" json:"minutes_per_game" validate:"gte=0"`
	PointsPerGame   float64   `db:"points_per_game" json:"points_per_game" validate:"gte=0"`
	ReboundsPerGame float64   `db:"rebounds_per_game" json:"rebounds_per_game" validate:"gte=0"`
	AssistsPerGame  float64   `db:"assists_per_game" json:"assists_per_game" validate:"gte=0"`
	UsagePct        float64   `db:"usage_pct" json:"usage_pct" validate:"gte=0,lte=1"`
	PER             float64   `db:"per" json:"per"`
	EffectiveFGPct  float64   `db:"effective_fg_pct" json:"effective_fg_pct" validate:"gte=0,lte=1"`
	AssistRatio     float64   `db:"assist_ratio" json:"assist_ratio" validate:"gte=0"`
	Position        string    `db:"position" json:"position"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// StatPerGame returns the per-game average for the given stat type
func (a *SeasonAggregate) StatPerGame(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return a.PointsPerGame
	case StatRebounds:
		return a.ReboundsPerGame
	case StatAssists:
		return a.AssistsPerGame
	}
	return 0
}

// DefaultStatPerGame returns the league fallback average for a stat type
func DefaultStatPerGame(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return DefaultPointsPerGame
	case StatRebounds:
		return DefaultReboundsPerGame
	case StatAssists:
		return DefaultAssistsPerGame
	}
	return 0
}
