package ml

import (
	"math"
)

// LinearConfig holds gradient descent hyperparameters
type LinearConfig struct {
	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`
	GradientClip float64 `json:"gradient_clip"`
}

// DefaultLinearConfig returns the descent parameters used in production
func DefaultLinearConfig() LinearConfig {
	return LinearConfig{
		LearningRate: 0.01,
		Iterations:   500,
		GradientClip: 10.0,
	}
}

// LinearModel is an intercept plus per-feature coefficients fitted by
// weighted batch gradient descent
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// TrainLinear fits the model with divergence guards: gradients are clipped to
// a maximum magnitude, a parameter update is only committed when the new value
// is finite, and an iteration that invalidates every parameter stops descent
// early. Residual non-finite parameters are coerced to 0.
func TrainLinear(cfg LinearConfig, ts *TrainingSet) (*LinearModel, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultLinearConfig().LearningRate
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultLinearConfig().Iterations
	}
	if cfg.GradientClip <= 0 {
		cfg.GradientClip = DefaultLinearConfig().GradientClip
	}

	numFeatures := len(ts.FeatureNames)
	model := &LinearModel{
		Coefficients: make([]float64, numFeatures),
	}

	totalWeight := 0.0
	for _, w := range ts.Weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		totalWeight = float64(len(ts.Weights))
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		interceptGrad := 0.0
		coeffGrads := make([]float64, numFeatures)

		for i, row := range ts.Features {
			pred := model.Predict(row)
			err := pred - ts.Targets[i]
			w := ts.Weights[i]
			interceptGrad += w * err
			for j, x := range row {
				coeffGrads[j] += w * err * x
			}
		}

		interceptGrad = clip(interceptGrad/totalWeight, cfg.GradientClip)
		for j := range coeffGrads {
			coeffGrads[j] = clip(coeffGrads[j]/totalWeight, cfg.GradientClip)
		}

		committed := 0
		if next := model.Intercept - cfg.LearningRate*interceptGrad; isFinite(next) {
			model.Intercept = next
			committed++
		}
		for j := range model.Coefficients {
			if next := model.Coefficients[j] - cfg.LearningRate*coeffGrads[j]; isFinite(next) {
				model.Coefficients[j] = next
				committed++
			}
		}

		if committed == 0 {
			break
		}
	}

	if !isFinite(model.Intercept) {
		model.Intercept = 0
	}
	for j, c := range model.Coefficients {
		if !isFinite(c) {
			model.Coefficients[j] = 0
		}
	}

	return model, nil
}

// Predict evaluates the fitted line for one feature row
func (m *LinearModel) Predict(features []float64) float64 {
	pred := m.Intercept
	for j, c := range m.Coefficients {
		if j >= len(features) {
			break
		}
		pred += c * features[j]
	}
	return pred
}

func clip(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
