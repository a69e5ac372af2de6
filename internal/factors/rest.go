package factors

// restFactor is a step function of days since the player's last game.
// Back-to-backs suppress output; extended rest boosts it.
func restFactor(daysRest int) float64 {
	switch {
	case daysRest <= 0:
		return 0.8
	case daysRest == 1:
		return 0.9
	case daysRest == 2:
		return 1.0
	case daysRest == 3:
		return 1.05
	default:
		return 1.1
	}
}
