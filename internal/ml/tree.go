package ml

import (
	"math"
	"math/rand"
	"sort"
)

// Node is one node of a regression tree. The two concrete shapes are Leaf and
// Split; malformed node states are unrepresentable.
type Node interface {
	predict(features []float64) float64
}

// Leaf terminates a path with the sample-weighted mean of its training targets
type Leaf struct {
	Prediction float64 `json:"prediction"`
}

// Split routes rows left when feature < threshold, right otherwise
type Split struct {
	FeatureIndex int     `json:"feature_index"`
	Threshold    float64 `json:"threshold"`
	Left         Node    `json:"left"`
	Right        Node    `json:"right"`
}

func (l *Leaf) predict(_ []float64) float64 {
	return l.Prediction
}

func (s *Split) predict(features []float64) float64 {
	if features[s.FeatureIndex] < s.Threshold {
		return s.Left.predict(features)
	}
	return s.Right.predict(features)
}

// TreeConfig holds tree induction hyperparameters
type TreeConfig struct {
	MaxDepth        int `json:"max_depth"`
	MinSamplesSplit int `json:"min_samples_split"`
	MinSamplesLeaf  int `json:"min_samples_leaf"`
}

// DefaultTreeConfig returns the induction parameters used in production
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		MaxDepth:        8,
		MinSamplesSplit: 4,
		MinSamplesLeaf:  2,
	}
}

// TreeTrainer grows one regression tree on a sample via variance-reduction
// splitting. Feature subsets are drawn from the supplied RNG, so
// reproducibility requires a seeded source.
type TreeTrainer struct {
	cfg TreeConfig
	rng *rand.Rand
}

// NewTreeTrainer creates a tree trainer with the given config and RNG
func NewTreeTrainer(cfg TreeConfig, rng *rand.Rand) *TreeTrainer {
	if cfg.MaxDepth <= 0 || cfg.MaxDepth > 12 {
		cfg.MaxDepth = DefaultTreeConfig().MaxDepth
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	if cfg.MinSamplesLeaf < 1 {
		cfg.MinSamplesLeaf = 1
	}
	return &TreeTrainer{cfg: cfg, rng: rng}
}

// Train grows a tree over the given rows. Rows, targets, and weights must be
// parallel; the caller is responsible for bootstrap resampling.
func (t *TreeTrainer) Train(features [][]float64, targets, weights []float64) Node {
	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}
	return t.grow(features, targets, weights, indices, 0)
}

type candidateSplit struct {
	featureIndex int
	threshold    float64
	score        float64
	left         []int
	right        []int
}

func (t *TreeTrainer) grow(features [][]float64, targets, weights []float64, indices []int, depth int) Node {
	if depth >= t.cfg.MaxDepth || len(indices) <= t.cfg.MinSamplesSplit {
		return t.leaf(targets, weights, indices)
	}

	parentVariance := t.nodeVariance(targets, weights, indices)
	if parentVariance == 0 {
		return t.leaf(targets, weights, indices)
	}

	best, found := t.bestSplit(features, targets, weights, indices, parentVariance)
	if !found {
		return t.leaf(targets, weights, indices)
	}

	return &Split{
		FeatureIndex: best.featureIndex,
		Threshold:    best.threshold,
		Left:         t.grow(features, targets, weights, best.left, depth+1),
		Right:        t.grow(features, targets, weights, best.right, depth+1),
	}
}

// bestSplit tests every midpoint threshold on a random ⌈√numFeatures⌉ subset
// of features and returns the one minimizing weighted child variance.
func (t *TreeTrainer) bestSplit(features [][]float64, targets, weights []float64, indices []int, parentVariance float64) (candidateSplit, bool) {
	numFeatures := len(features[indices[0]])
	subset := t.sampleFeatures(numFeatures)

	best := candidateSplit{score: parentVariance}
	found := false

	for _, fi := range subset {
		thresholds := midpointThresholds(features, indices, fi)
		for _, threshold := range thresholds {
			left, right := partition(features, indices, fi, threshold)
			if len(left) < t.cfg.MinSamplesLeaf || len(right) < t.cfg.MinSamplesLeaf {
				continue
			}
			score := t.weightedChildVariance(targets, weights, left, right)
			if score < best.score {
				best = candidateSplit{
					featureIndex: fi,
					threshold:    threshold,
					score:        score,
					left:         left,
					right:        right,
				}
				found = true
			}
		}
	}
	return best, found
}

// sampleFeatures draws ⌈√numFeatures⌉ distinct feature indices
func (t *TreeTrainer) sampleFeatures(numFeatures int) []int {
	size := int(math.Ceil(math.Sqrt(float64(numFeatures))))
	if size > numFeatures {
		size = numFeatures
	}
	perm := t.rng.Perm(numFeatures)
	return perm[:size]
}

func midpointThresholds(features [][]float64, indices []int, featureIndex int) []float64 {
	values := make([]float64, 0, len(indices))
	seen := make(map[float64]struct{}, len(indices))
	for _, idx := range indices {
		v := features[idx][featureIndex]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	if len(values) < 2 {
		return nil
	}
	sort.Float64s(values)

	thresholds := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		thresholds = append(thresholds, (values[i-1]+values[i])/2)
	}
	return thresholds
}

func partition(features [][]float64, indices []int, featureIndex int, threshold float64) (left, right []int) {
	for _, idx := range indices {
		if features[idx][featureIndex] < threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}

func (t *TreeTrainer) weightedChildVariance(targets, weights []float64, left, right []int) float64 {
	leftWeight := totalWeight(weights, left)
	rightWeight := totalWeight(weights, right)
	total := leftWeight + rightWeight
	if total == 0 {
		return math.Inf(1)
	}
	leftVar := t.nodeVariance(targets, weights, left)
	rightVar := t.nodeVariance(targets, weights, right)
	return (leftWeight*leftVar + rightWeight*rightVar) / total
}

func (t *TreeTrainer) nodeVariance(targets, weights []float64, indices []int) float64 {
	vals := make([]float64, len(indices))
	ws := make([]float64, len(indices))
	for i, idx := range indices {
		vals[i] = targets[idx]
		ws[i] = weights[idx]
	}
	return weightedVariance(vals, ws)
}

func (t *TreeTrainer) leaf(targets, weights []float64, indices []int) Node {
	vals := make([]float64, len(indices))
	ws := make([]float64, len(indices))
	for i, idx := range indices {
		vals[i] = targets[idx]
		ws[i] = weights[idx]
	}
	return &Leaf{Prediction: weightedMean(vals, ws)}
}

func totalWeight(weights []float64, indices []int) float64 {
	sum := 0.0
	for _, idx := range indices {
		sum += weights[idx]
	}
	return sum
}
