package models

import (
	"time"

	"github.com/google/uuid"
)

// GameLog represents one player-game stat line. Rows are append-only and
// unique on (player_id, game_id).
type GameLog struct {
	ID              uuid.UUID `db:"id" json:"id" validate:"required"`
	PlayerID        uuid.UUID `db:"player_id" json:"player_id" validate:"required"`
	PlayerName      string    `db:"player_name" json:"player_name" validate:"required"`
	GameID          string    `db:"game_id" json:"game_id" validate:"required"`
	Team            string    `db:"team" json:"team" validate:"required"`
	Opponent        string    `db:"opponent" json:"opponent" validate:"required"`
	GameDate        time.Time `db:"game_date" json:"game_date" validate:"required"`
	IsHome          bool      `db:"is_home" json:"is_home"`
	Season          string    `db:"season" json:"season" validate:"required"`
	Minutes         float64   `db:"minutes" json:"minutes" validate:"gte=0"`
	Points          float64   `db:"points" json:"points" validate:"gte=0"`
	Rebounds        float64   `db:"rebounds" json:"rebounds" validate:"gte=0"`
	Assists         float64   `db:"assists" json:"assists" validate:"gte=0"`
	FieldGoalsMade  float64   `db:"fg_made" json:"fg_made" validate:"gte=0"`
	FieldGoalsAtt   float64   `db:"fg_att" json:"fg_att" validate:"gte=0"`
	ThreePointsMade float64   `db:"three_made" json:"three_made" validate:"gte=0"`
	ThreePointsAtt  float64   `db:"three_att" json:"three_att" validate:"gte=0"`
	FreeThrowsMade  float64   `db:"ft_made" json:"ft_made" validate:"gte=0"`
	FreeThrowsAtt   float64   `db:"ft_att" json:"ft_att" validate:"gte=0"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// StatValue returns the recorded value for the given stat type
func (g *GameLog) StatValue(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return g.Points
	case StatRebounds:
		return g.Rebounds
	case StatAssists:
		return g.Assists
	}
	return 0
}

// FieldGoalPct returns the shooting percentage for the game, 0 when no attempts
func (g *GameLog) FieldGoalPct() float64 {
	if g.FieldGoalsAtt <= 0 {
		return 0
	}
	return g.FieldGoalsMade / g.FieldGoalsAtt
}

// EffectiveFieldGoalPct weights made threes at 1.5 per the standard definition
func (g *GameLog) EffectiveFieldGoalPct() float64 {
	if g.FieldGoalsAtt <= 0 {
		return 0
	}
	return (g.FieldGoalsMade + 0.5*g.ThreePointsMade) / g.FieldGoalsAtt
}
