package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Model type identifiers persisted with each trained model.
const (
	ModelTypeForest = "forest"
	ModelTypeLinear = "linear"
)

// TrainedModel represents a persisted model for one (statType, season) pair.
// A model is immutable once trained; retraining replaces the row wholesale.
type TrainedModel struct {
	ID              uuid.UUID       `db:"id" json:"id" validate:"required"`
	StatType        StatType        `db:"stat_type" json:"stat_type" validate:"required"`
	Season          string          `db:"season" json:"season" validate:"required"`
	ModelType       string          `db:"model_type" json:"model_type" validate:"required,oneof=forest linear"`
	Hyperparameters json.RawMessage `db:"hyperparameters" json:"hyperparameters"`
	Payload         json.RawMessage `db:"payload" json:"payload" validate:"required"`
	Metrics         json.RawMessage `db:"metrics" json:"metrics"`
	FeatureNames    []string        `db:"feature_names" json:"feature_names" validate:"required,min=1"`
	TrainedAt       time.Time       `db:"trained_at" json:"trained_at" validate:"required"`
	Active          bool            `db:"active" json:"active"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// ValidationMetrics holds the fit statistics computed on the hold-out split
type ValidationMetrics struct {
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	RSquared float64 `json:"r_squared"`
	Samples  int     `json:"samples"`
}

// GetMetrics decodes the stored validation metrics, returning zeroes when absent
func (m *TrainedModel) GetMetrics() ValidationMetrics {
	var vm ValidationMetrics
	if len(m.Metrics) == 0 {
		return vm
	}
	_ = json.Unmarshal(m.Metrics, &vm)
	return vm
}

// MatchesFeatures reports whether a feature name ordering matches the model's
// canonical ordering exactly
func (m *TrainedModel) MatchesFeatures(names []string) bool {
	if len(names) != len(m.FeatureNames) {
		return false
	}
	for i, n := range names {
		if n != m.FeatureNames[i] {
			return false
		}
	}
	return true
}
