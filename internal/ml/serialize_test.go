package ml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/models"
)

func TestForestRoundTrip(t *testing.T) {
	ts := syntheticSet(80, 11)
	forest, err := TrainForest(ForestConfig{NumTrees: 5, Seed: 8, Tree: DefaultTreeConfig()}, ts)
	require.NoError(t, err)

	raw, err := EncodeForest(forest)
	require.NoError(t, err)

	decoded, err := DecodeForest(raw)
	require.NoError(t, err)
	require.Len(t, decoded.Trees, 5)
	assert.Equal(t, forest.Config(), decoded.Config())

	for _, row := range ts.Features[:10] {
		want, _ := forest.Predict(row)
		got, _ := decoded.Predict(row)
		assert.Equal(t, want, got)
	}
}

func TestLinearRoundTrip(t *testing.T) {
	model := &LinearModel{Intercept: 1.5, Coefficients: []float64{0.25, -3}}

	raw, err := EncodeLinear(model)
	require.NoError(t, err)

	decoded, err := DecodeLinear(raw)
	require.NoError(t, err)
	assert.Equal(t, model, decoded)
}

func TestDecodeForestMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{nope"},
		{name: "missing child", raw: `{"trees":[{"type":"split","feature_index":0,"threshold":1}]}`},
		{name: "unknown node type", raw: `{"trees":[{"type":"stump"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeForest(json.RawMessage(tt.raw))
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestDecodeLinearMalformed(t *testing.T) {
	_, err := DecodeLinear(json.RawMessage(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestLoadPredictor(t *testing.T) {
	linearRaw, err := EncodeLinear(&LinearModel{Intercept: 6})
	require.NoError(t, err)

	p, err := LoadPredictor(&models.TrainedModel{ModelType: models.ModelTypeLinear, Payload: linearRaw})
	require.NoError(t, err)
	v, err := p.Predict(nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	forestRaw, err := EncodeForest(&Forest{Trees: []Node{&Leaf{Prediction: 9}}})
	require.NoError(t, err)

	p, err = LoadPredictor(&models.TrainedModel{ModelType: models.ModelTypeForest, Payload: forestRaw})
	require.NoError(t, err)
	v, err = p.Predict(nil)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestLoadPredictorUnknownType(t *testing.T) {
	_, err := LoadPredictor(&models.TrainedModel{ModelType: "perceptron"})
	assert.ErrorIs(t, err, ErrUnknownModelType)
}
