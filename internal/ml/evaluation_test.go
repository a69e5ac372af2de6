package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type constantPredictor struct {
	value float64
	err   error
}

func (p constantPredictor) Predict(_ []float64) (float64, error) {
	return p.value, p.err
}

func TestEvaluatePerfectPredictor(t *testing.T) {
	ts := &TrainingSet{
		FeatureNames: []string{"x"},
		Features:     [][]float64{{0}, {0}, {0}},
		Targets:      []float64{5, 5, 5},
		Weights:      []float64{1, 1, 1},
	}

	// identical targets give zero total variance, so R² stays unset
	m := Evaluate(constantPredictor{value: 5}, ts)
	assert.Zero(t, m.MAE)
	assert.Zero(t, m.RMSE)
	assert.Zero(t, m.RSquared)
	assert.Equal(t, 3, m.Samples)
}

func TestEvaluateHandComputed(t *testing.T) {
	ts := &TrainingSet{
		FeatureNames: []string{"x"},
		Features:     [][]float64{{0}, {0}, {0}, {0}},
		Targets:      []float64{10, 20, 30, 40},
		Weights:      []float64{1, 1, 1, 1},
	}

	// predicting the mean (25): errors ±15, ±5
	m := Evaluate(constantPredictor{value: 25}, ts)
	assert.InDelta(t, 10.0, m.MAE, 1e-9)
	assert.InDelta(t, math.Sqrt(125), m.RMSE, 1e-9)
	assert.InDelta(t, 0.0, m.RSquared, 1e-9)
	assert.Equal(t, 4, m.Samples)
}

func TestEvaluateTreatsBadPredictionsAsZero(t *testing.T) {
	ts := &TrainingSet{
		FeatureNames: []string{"x"},
		Features:     [][]float64{{0}, {0}},
		Targets:      []float64{3, 7},
		Weights:      []float64{1, 1},
	}

	nan := Evaluate(constantPredictor{value: math.NaN()}, ts)
	failed := Evaluate(constantPredictor{err: errors.New("boom")}, ts)

	// both degrade identically to an always-zero predictor
	assert.InDelta(t, 5.0, nan.MAE, 1e-9)
	assert.Equal(t, nan, failed)
}

func TestEvaluateEmptySet(t *testing.T) {
	m := Evaluate(constantPredictor{value: 1}, &TrainingSet{})
	assert.Zero(t, m.Samples)
}
