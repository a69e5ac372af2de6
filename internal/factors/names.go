package factors

// Canonical factor names as they appear in the projection factor map
const (
	FactorSeasonAverage    = "seasonAverage"
	FactorRecentForm       = "recentForm"
	FactorOpponentDefense  = "opponentDefense"
	FactorHomeAway         = "homeAway"
	FactorRest             = "restFactor"
	FactorInjuryImpact     = "injuryImpact"
	FactorHeadToHead       = "headToHead"
	FactorPace             = "pace"
	FactorUsage            = "usage"
	FactorTeammateShooting = "teammateShooting"
	FactorTeamScheme       = "teamScheme"
	FactorMinutes          = "minutes"
	FactorPosition         = "position"
	FactorPER              = "perFactor"
	FactorHollinger        = "hollingerFactor"
	FactorRegressionToMean = "regressionToMean"
)

// AllFactorNames returns every canonical factor name
func AllFactorNames() []string {
	return []string{
		FactorSeasonAverage,
		FactorRecentForm,
		FactorOpponentDefense,
		FactorHomeAway,
		FactorRest,
		FactorInjuryImpact,
		FactorHeadToHead,
		FactorPace,
		FactorUsage,
		FactorTeammateShooting,
		FactorTeamScheme,
		FactorMinutes,
		FactorPosition,
		FactorPER,
		FactorHollinger,
		FactorRegressionToMean,
	}
}
