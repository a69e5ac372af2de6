package factors

// PaceTier maps a minimum combined-pace value to a multiplier. Tiers are
// evaluated top-down; the first tier at or below the observed pace wins.
type PaceTier struct {
	MinPace float64 `mapstructure:"min_pace" json:"min_pace"`
	Factor  float64 `mapstructure:"factor" json:"factor"`
}

// Config holds the tunable thresholds of the factor engine. The literal tier
// values are empirical; they are configuration so a season refresh does not
// require a code change.
type Config struct {
	RecentFormGames    int        `mapstructure:"recent_form_games"`
	FormDecay          float64    `mapstructure:"form_decay"`
	PaceTiers          []PaceTier `mapstructure:"pace_tiers"`
	DefenseFloor       float64    `mapstructure:"defense_floor"`
	DefenseCeiling     float64    `mapstructure:"defense_ceiling"`
	MinHeadToHead      int        `mapstructure:"min_head_to_head"`
	PERBoostThreshold  float64    `mapstructure:"per_boost_threshold"`
	HollingerThreshold float64    `mapstructure:"hollinger_threshold"`
}

// DefaultConfig returns the production thresholds
func DefaultConfig() Config {
	return Config{
		RecentFormGames: 10,
		FormDecay:       0.85,
		PaceTiers: []PaceTier{
			{MinPace: 106.0, Factor: 1.25},
			{MinPace: 103.0, Factor: 1.15},
			{MinPace: 101.0, Factor: 1.08},
			{MinPace: 99.0, Factor: 1.01},
			{MinPace: 97.0, Factor: 0.96},
			{MinPace: 95.0, Factor: 0.90},
			{MinPace: 93.0, Factor: 0.84},
			{MinPace: 0, Factor: 0.78},
		},
		DefenseFloor:       0.75,
		DefenseCeiling:     1.25,
		MinHeadToHead:      2,
		PERBoostThreshold:  18.0,
		HollingerThreshold: 20.0,
	}
}
