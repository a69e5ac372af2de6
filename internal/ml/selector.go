package ml

import (
	"github.com/yourusername/courtline/internal/models"
)

// SelectorPolicy configures per-stat model selection. PreferLinear marks stat
// types for which the linear model wins ties when its R² is positive and
// exceeds the forest's. The override is configuration, not a baked-in rule.
type SelectorPolicy struct {
	PreferLinear map[models.StatType]bool
}

// DefaultSelectorPolicy prefers the linear model for rebounds, matching the
// historical production behavior, pending review.
func DefaultSelectorPolicy() SelectorPolicy {
	return SelectorPolicy{
		PreferLinear: map[models.StatType]bool{
			models.StatRebounds: true,
		},
	}
}

// Selection is the outcome of comparing both trained models on validation fit
type Selection struct {
	ModelType     string
	Forest        *Forest
	Linear        *LinearModel
	ForestMetrics models.ValidationMetrics
	LinearMetrics models.ValidationMetrics
	LowConfidence bool
}

// ChosenMetrics returns the validation metrics of the selected model
func (s Selection) ChosenMetrics() models.ValidationMetrics {
	if s.ModelType == models.ModelTypeLinear {
		return s.LinearMetrics
	}
	return s.ForestMetrics
}

// Predictor returns a scorer for the selected model
func (s Selection) Predictor() Predictor {
	if s.ModelType == models.ModelTypeLinear {
		return LinearPredictor(s.Linear)
	}
	return ForestPredictor(s.Forest)
}

// Select picks forest vs linear per validation R². When neither model achieves
// positive R² the forest is kept and the selection is flagged low-confidence.
func Select(stat models.StatType, forest *Forest, forestMetrics models.ValidationMetrics, linear *LinearModel, linearMetrics models.ValidationMetrics, policy SelectorPolicy) Selection {
	sel := Selection{
		ModelType:     models.ModelTypeForest,
		Forest:        forest,
		Linear:        linear,
		ForestMetrics: forestMetrics,
		LinearMetrics: linearMetrics,
	}

	if forestMetrics.RSquared <= 0 && linearMetrics.RSquared <= 0 {
		sel.LowConfidence = true
		return sel
	}

	if policy.PreferLinear[stat] && linearMetrics.RSquared > 0 && linearMetrics.RSquared > forestMetrics.RSquared {
		sel.ModelType = models.ModelTypeLinear
		return sel
	}

	if linearMetrics.RSquared > forestMetrics.RSquared {
		sel.ModelType = models.ModelTypeLinear
	}
	return sel
}
