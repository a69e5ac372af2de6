package factors

import (
	"github.com/yourusername/courtline/internal/models"
)

// homeAwayFactor is the ratio of the player's historical average at the
// upcoming venue to the average at the other venue, applied directionally.
// Requires at least two games at each venue, else neutral.
func homeAwayFactor(logs []models.GameLog, stat models.StatType, isHome bool) float64 {
	homeSum, homeCount := 0.0, 0
	awaySum, awayCount := 0.0, 0
	for _, g := range logs {
		if g.IsHome {
			homeSum += g.StatValue(stat)
			homeCount++
		} else {
			awaySum += g.StatValue(stat)
			awayCount++
		}
	}
	if homeCount < 2 || awayCount < 2 {
		return 1.0
	}

	homeAvg := homeSum / float64(homeCount)
	awayAvg := awaySum / float64(awayCount)

	if isHome {
		if awayAvg == 0 {
			return 1.0
		}
		return clampFactor(homeAvg/awayAvg, 0.8, 1.2)
	}
	if homeAvg == 0 {
		return 1.0
	}
	return clampFactor(awayAvg/homeAvg, 0.8, 1.2)
}
