package factors

import (
	"github.com/yourusername/courtline/internal/models"
)

// injuryImpact boosts a projection when injured teammates free up usage.
// When significance data is available from the injury reader it drives the
// factor directly; otherwise a count-based fallback applies.
func injuryImpact(injuries []models.InjuryStatus) float64 {
	if len(injuries) == 0 {
		return 1.0
	}

	totalSignificance := 0.0
	scored := 0
	for _, inj := range injuries {
		if inj.Significance > 0 {
			totalSignificance += inj.Significance
			scored++
		}
	}

	if scored > 0 {
		// Each unit of significance is worth up to +8%, capped at +20%
		boost := 1.0 + 0.08*totalSignificance
		if boost > 1.20 {
			boost = 1.20
		}
		return boost
	}

	// Fallback: scale by injured-teammate count alone
	switch {
	case len(injuries) >= 3:
		return 1.15
	case len(injuries) == 2:
		return 1.10
	default:
		return 1.05
	}
}
