package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel buckets the composite risk score of a projection
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendation is the betting call emitted against a market line
type Recommendation string

const (
	RecommendOver  Recommendation = "OVER"
	RecommendUnder Recommendation = "UNDER"
	RecommendPass  Recommendation = "PASS"
)

// Projection is the full result of one projection request. Ephemeral, but
// optionally persisted for outcome tracking.
type Projection struct {
	ID              uuid.UUID           `db:"id" json:"id"`
	PlayerID        uuid.UUID           `db:"player_id" json:"player_id" validate:"required"`
	Opponent        string              `db:"opponent" json:"opponent" validate:"required"`
	StatType        StatType            `db:"stat_type" json:"stat_type" validate:"required"`
	GameDate        time.Time           `db:"game_date" json:"game_date" validate:"required"`
	ProjectedValue  float64             `db:"projected_value" json:"projected_value" validate:"gte=0"`
	ConfidenceScore float64             `db:"confidence_score" json:"confidence_score" validate:"gte=0,lte=1"`
	Factors         map[string]float64  `db:"-" json:"factors"`
	RiskLevel       RiskLevel           `db:"risk_level" json:"risk_level" validate:"oneof=LOW MEDIUM HIGH"`
	Edge            float64             `db:"edge" json:"edge"`
	MarketLine      *float64            `db:"market_line" json:"market_line,omitempty"`
	Recommendation  Recommendation      `db:"recommendation" json:"recommendation" validate:"oneof=OVER UNDER PASS"`
	Breakdown       ProjectionBreakdown `db:"-" json:"breakdown"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
}

// ProjectionBreakdown explains how the projected value was assembled
type ProjectionBreakdown struct {
	BaseValue     float64  `json:"base_value"`
	SeasonAverage float64  `json:"season_average"`
	RecentForm    float64  `json:"recent_form"`
	ModelEstimate float64  `json:"model_estimate"`
	ModelType     string   `json:"model_type"`
	ModelRSquared float64  `json:"model_r_squared"`
	SampleSize    int      `json:"sample_size"`
	Warnings      []string `json:"warnings,omitempty"`
}

// HasLine reports whether a market line was supplied with the request
func (p *Projection) HasLine() bool {
	return p.MarketLine != nil
}

// IsActionable reports whether the projection carries a bettable call
func (p *Projection) IsActionable() bool {
	return p.Recommendation == RecommendOver || p.Recommendation == RecommendUnder
}
