package ml

import (
	"math"
	"math/rand"
	"time"
)

// ForestConfig holds ensemble hyperparameters
type ForestConfig struct {
	NumTrees int        `json:"num_trees"`
	Tree     TreeConfig `json:"tree"`
	Seed     int64      `json:"seed"`
}

// DefaultForestConfig returns the ensemble parameters used in production
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees: 50,
		Tree:     DefaultTreeConfig(),
	}
}

// Forest is a bootstrap-aggregated ensemble of regression trees
type Forest struct {
	Trees []Node
	cfg   ForestConfig
}

// TrainForest trains cfg.NumTrees independent trees, each on an independent
// bootstrap resample of the full set. Per-row recency weights travel with the
// resampled rows into leaf-mean computation.
func TrainForest(cfg ForestConfig, ts *TrainingSet) (*Forest, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = DefaultForestConfig().NumTrees
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	forest := &Forest{
		Trees: make([]Node, 0, cfg.NumTrees),
		cfg:   cfg,
	}

	n := len(ts.Features)
	for i := 0; i < cfg.NumTrees; i++ {
		features := make([][]float64, n)
		targets := make([]float64, n)
		weights := make([]float64, n)
		for j := 0; j < n; j++ {
			pick := rng.Intn(n)
			features[j] = ts.Features[pick]
			targets[j] = ts.Targets[pick]
			weights[j] = ts.Weights[pick]
		}

		trainer := NewTreeTrainer(cfg.Tree, rng)
		forest.Trees = append(forest.Trees, trainer.Train(features, targets, weights))
	}

	return forest, nil
}

// Predict averages leaf outputs across all trees. Trees producing NaN or Inf
// are excluded; when no tree is valid the prediction is 0 and flagged.
func (f *Forest) Predict(features []float64) (value float64, degraded bool) {
	sum := 0.0
	valid := 0
	for _, tree := range f.Trees {
		p := tree.predict(features)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		sum += p
		valid++
	}
	if valid == 0 {
		return 0, true
	}
	return sum / float64(valid), false
}

// Config returns the hyperparameters the forest was trained with
func (f *Forest) Config() ForestConfig {
	return f.cfg
}
