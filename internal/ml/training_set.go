package ml

// TrainingSet is an immutable snapshot of feature rows, targets, and per-row
// sample weights. Weights encode recency: current-season rows carry more
// influence than prior-season rows.
type TrainingSet struct {
	FeatureNames []string
	Features     [][]float64
	Targets      []float64
	Weights      []float64
}

// Validate checks internal consistency of the training set
func (ts *TrainingSet) Validate() error {
	n := len(ts.Features)
	if n == 0 {
		return ErrEmptyTrainingSet
	}
	if len(ts.Targets) != n || len(ts.Weights) != n {
		return ErrDimensionMismatch
	}
	width := len(ts.FeatureNames)
	for _, row := range ts.Features {
		if len(row) != width {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// Split partitions the set into training and validation subsets. The split is
// positional: the most recent rows (assumed last) form the validation slice.
func (ts *TrainingSet) Split(validationFraction float64) (train, validation *TrainingSet) {
	n := len(ts.Features)
	holdout := int(float64(n) * validationFraction)
	if holdout < 1 && n > 4 {
		holdout = 1
	}
	cut := n - holdout

	train = &TrainingSet{
		FeatureNames: ts.FeatureNames,
		Features:     ts.Features[:cut],
		Targets:      ts.Targets[:cut],
		Weights:      ts.Weights[:cut],
	}
	validation = &TrainingSet{
		FeatureNames: ts.FeatureNames,
		Features:     ts.Features[cut:],
		Targets:      ts.Targets[cut:],
		Weights:      ts.Weights[cut:],
	}
	return train, validation
}

func weightedMean(values, weights []float64) float64 {
	sum := 0.0
	totalWeight := 0.0
	for i, v := range values {
		w := weights[i]
		sum += v * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}

func weightedVariance(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := weightedMean(values, weights)
	variance := 0.0
	totalWeight := 0.0
	for i, v := range values {
		w := weights[i]
		diff := v - mean
		variance += w * diff * diff
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return variance / totalWeight
}
