// Package evaluation replays historical games through the projection pipeline
// to measure out-of-sample accuracy.
package evaluation

import (
	"math"
	"time"
)

// Metrics represents projection accuracy over a set of replayed games
type Metrics struct {
	Samples     int       `json:"samples"`
	MAE         float64   `json:"mae"`
	RMSE        float64   `json:"rmse"`
	Bias        float64   `json:"bias"`
	WithinOne   float64   `json:"within_one"`
	WithinThree float64   `json:"within_three"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// accumulator collects per-game errors before folding them into Metrics
type accumulator struct {
	absSum      float64
	sqSum       float64
	errSum      float64
	withinOne   int
	withinThree int
	count       int
}

func (a *accumulator) add(projected, actual float64) {
	err := projected - actual
	a.errSum += err
	a.absSum += math.Abs(err)
	a.sqSum += err * err
	if math.Abs(err) <= 1.0 {
		a.withinOne++
	}
	if math.Abs(err) <= 3.0 {
		a.withinThree++
	}
	a.count++
}

func (a *accumulator) metrics(start, end time.Time) Metrics {
	m := Metrics{Samples: a.count, StartDate: start, EndDate: end}
	if a.count == 0 {
		return m
	}
	n := float64(a.count)
	m.MAE = a.absSum / n
	m.RMSE = math.Sqrt(a.sqSum / n)
	m.Bias = a.errSum / n
	m.WithinOne = float64(a.withinOne) / n
	m.WithinThree = float64(a.withinThree) / n
	return m
}

// ConsistencyScore measures how stable window MAE is across walk-forward
// windows: 1 means identical error in every window, 0 means wild swings
func ConsistencyScore(windows []WindowResult) float64 {
	if len(windows) < 2 {
		return 1.0
	}

	var sum float64
	for _, w := range windows {
		sum += w.Metrics.MAE
	}
	mean := sum / float64(len(windows))
	if mean == 0 {
		return 1.0
	}

	var variance float64
	for _, w := range windows {
		d := w.Metrics.MAE - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(windows)))

	score := 1.0 - stddev/mean
	if score < 0 {
		return 0
	}
	return score
}
