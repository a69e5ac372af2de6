package projection

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// EdgeThresholds holds the minimum absolute edge per stat type below which a
// bet is not worth the variance
type EdgeThresholds map[models.StatType]float64

// DefaultEdgeThresholds returns the production minimum-edge settings
func DefaultEdgeThresholds() EdgeThresholds {
	return EdgeThresholds{
		models.StatPoints:   1.0,
		models.StatRebounds: 0.8,
		models.StatAssists:  0.7,
	}
}

// MinimumConfidence is the floor below which every projection is a PASS
const MinimumConfidence = 0.5

// Recommend compares the projection to the market line and emits the call.
// Without a line the edge is 0 and the recommendation is always PASS.
func Recommend(projected float64, line *float64, confidence float64, stat models.StatType, thresholds EdgeThresholds) (edge float64, rec models.Recommendation) {
	if line == nil {
		return 0, models.RecommendPass
	}

	edge = projected - *line
	if confidence < MinimumConfidence {
		return edge, models.RecommendPass
	}

	minEdge, ok := thresholds[stat]
	if !ok {
		minEdge = 1.0
	}
	if math.Abs(edge) < minEdge {
		return edge, models.RecommendPass
	}

	if edge > 0 {
		return edge, models.RecommendOver
	}
	return edge, models.RecommendUnder
}
