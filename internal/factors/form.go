package factors

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// recentForm computes an exponentially-decayed weighted average of the last K
// games, most recent weighted highest. Returns 0 when no games exist.
func recentForm(logs []models.GameLog, stat models.StatType, k int, decay float64) float64 {
	if len(logs) == 0 || k <= 0 {
		return 0
	}
	if k > len(logs) {
		k = len(logs)
	}
	recent := logs[len(logs)-k:]

	weightedSum := 0.0
	weightTotal := 0.0
	weight := 1.0
	// Walk newest to oldest so the freshest game carries full weight
	for i := len(recent) - 1; i >= 0; i-- {
		weightedSum += recent[i].StatValue(stat) * weight
		weightTotal += weight
		weight *= decay
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

// seasonAverage is the arithmetic mean over all available games
func seasonAverage(logs []models.GameLog, stat models.StatType) float64 {
	if len(logs) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range logs {
		sum += g.StatValue(stat)
	}
	return sum / float64(len(logs))
}

// formVolatility is the coefficient of variation over the last K games,
// feeding the risk score. 0 when undefined.
func formVolatility(logs []models.GameLog, stat models.StatType, k int) float64 {
	if len(logs) < 2 || k < 2 {
		return 0
	}
	if k > len(logs) {
		k = len(logs)
	}
	recent := logs[len(logs)-k:]

	mean := 0.0
	for _, g := range recent {
		mean += g.StatValue(stat)
	}
	mean /= float64(len(recent))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, g := range recent {
		d := g.StatValue(stat) - mean
		variance += d * d
	}
	variance /= float64(len(recent))
	return math.Sqrt(variance) / mean
}
