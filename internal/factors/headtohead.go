package factors

import (
	"github.com/yourusername/courtline/internal/models"
)

// headToHead compares performance against this specific opponent to the
// overall average. Requires a minimum number of prior meetings; below that
// the sample is noise and the factor stays neutral.
func headToHead(logs []models.GameLog, stat models.StatType, opponent string, minMeetings int) (factor float64, avg float64, meetings int) {
	canonical := NormalizeTeam(opponent)

	sum := 0.0
	for _, g := range logs {
		if NormalizeTeam(g.Opponent) == canonical {
			sum += g.StatValue(stat)
			meetings++
		}
	}
	if meetings < minMeetings {
		return 1.0, 0, meetings
	}

	avg = sum / float64(meetings)
	overall := seasonAverage(logs, stat)
	if overall == 0 {
		return 1.0, avg, meetings
	}
	return clampFactor(avg/overall, 0.7, 1.3), avg, meetings
}
