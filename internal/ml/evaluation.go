package ml

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// Predictor is anything that can score a feature row
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// forestPredictor adapts Forest to the Predictor interface, absorbing the
// degraded flag (a degraded forest predicts 0, which the metrics will punish)
type forestPredictor struct {
	forest *Forest
}

func (p forestPredictor) Predict(features []float64) (float64, error) {
	v, _ := p.forest.Predict(features)
	return v, nil
}

// linearPredictor adapts LinearModel to the Predictor interface
type linearPredictor struct {
	model *LinearModel
}

func (p linearPredictor) Predict(features []float64) (float64, error) {
	return p.model.Predict(features), nil
}

// ForestPredictor wraps a forest for scoring
func ForestPredictor(f *Forest) Predictor {
	return forestPredictor{forest: f}
}

// LinearPredictor wraps a linear model for scoring
func LinearPredictor(m *LinearModel) Predictor {
	return linearPredictor{model: m}
}

// Evaluate computes MAE, RMSE, and R² of a predictor on a validation set.
// Non-finite predictions are treated as 0 so one bad row cannot poison the
// aggregate.
func Evaluate(p Predictor, ts *TrainingSet) models.ValidationMetrics {
	n := len(ts.Features)
	if n == 0 {
		return models.ValidationMetrics{}
	}

	absSum := 0.0
	sqSum := 0.0
	targetSum := 0.0
	for i, row := range ts.Features {
		pred, err := p.Predict(row)
		if err != nil || !isFinite(pred) {
			pred = 0
		}
		diff := pred - ts.Targets[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		targetSum += ts.Targets[i]
	}

	mean := targetSum / float64(n)
	totalSS := 0.0
	for _, y := range ts.Targets {
		d := y - mean
		totalSS += d * d
	}

	metrics := models.ValidationMetrics{
		MAE:     absSum / float64(n),
		RMSE:    math.Sqrt(sqSum / float64(n)),
		Samples: n,
	}
	if totalSS > 0 {
		metrics.RSquared = 1 - sqSum/totalSS
	}
	return metrics
}
