package models

import "time"

// InjuryStatus describes one currently-injured teammate
type InjuryStatus struct {
	PlayerName   string    `json:"player_name" validate:"required"`
	Team         string    `json:"team" validate:"required"`
	Status       string    `json:"status"`
	Significance float64   `json:"significance" validate:"gte=0,lte=1"`
	ReportedAt   time.Time `json:"reported_at"`
}

// IsSignificant reports whether the injured player meaningfully shifts
// opportunity to teammates
func (i *InjuryStatus) IsSignificant() bool {
	return i.Significance >= 0.5
}
