package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/projection"
)

func buildTestLogs(playerID uuid.UUID, start time.Time, points []float64) []models.GameLog {
	logs := make([]models.GameLog, 0, len(points))
	for i, p := range points {
		logs = append(logs, models.GameLog{
			ID:       uuid.New(),
			PlayerID: playerID,
			GameID:   uuid.NewString(),
			GameDate: start.AddDate(0, 0, i*2),
			Team:     "BOS",
			Opponent: "NYK",
			IsHome:   i%2 == 0,
			Minutes:  34,
			Points:   p,
			Season:   "2025-26",
		})
	}
	return logs
}

func newTestEngine() *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(
		factors.NewEngine(factors.DefaultConfig()),
		projection.NewCombiner(projection.DefaultWeights()),
		nil, nil, log,
	)
}

func TestRunWalkForward(t *testing.T) {
	playerID := uuid.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []float64{20, 22, 18, 25, 21, 19, 24, 23, 20, 22, 26, 18, 21, 23, 22}
	logs := buildTestLogs(playerID, start, points)

	cfg := DefaultConfig(models.StatPoints, start, start.AddDate(0, 0, 30))
	cfg.WindowDays = 10
	cfg.StepDays = 10
	cfg.MinGamesPerPlayer = 5

	result, err := newTestEngine().Run(context.Background(), cfg, logs)
	require.NoError(t, err)

	assert.Equal(t, models.StatPoints, result.StatType)
	assert.Len(t, result.Windows, 3)
	assert.Greater(t, result.Overall.Samples, 0)
	assert.Greater(t, result.Overall.MAE, 0.0)
	assert.GreaterOrEqual(t, result.ConsistencyScore, 0.0)
	assert.LessOrEqual(t, result.ConsistencyScore, 1.0)
}

func TestRunSkipsWarmupGames(t *testing.T) {
	playerID := uuid.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	logs := buildTestLogs(playerID, start, []float64{20, 22, 18})

	cfg := DefaultConfig(models.StatPoints, start, start.AddDate(0, 0, 10))
	result, err := newTestEngine().Run(context.Background(), cfg, logs)
	require.NoError(t, err)

	// three games, all within the five game warmup
	assert.Equal(t, 0, result.Overall.Samples)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConfig(models.StatPoints, start, start.AddDate(0, 0, 10))
	cfg.WindowDays = 0
	_, err := newTestEngine().Run(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = DefaultConfig(models.StatPoints, start, start)
	_, err = newTestEngine().Run(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestConsistencyScore(t *testing.T) {
	uniform := []WindowResult{
		{Metrics: Metrics{Samples: 10, MAE: 2.0}},
		{Metrics: Metrics{Samples: 10, MAE: 2.0}},
		{Metrics: Metrics{Samples: 10, MAE: 2.0}},
	}
	assert.InDelta(t, 1.0, ConsistencyScore(uniform), 1e-9)

	volatile := []WindowResult{
		{Metrics: Metrics{Samples: 10, MAE: 1.0}},
		{Metrics: Metrics{Samples: 10, MAE: 5.0}},
	}
	assert.Less(t, ConsistencyScore(volatile), 1.0)

	assert.Equal(t, 1.0, ConsistencyScore(nil))
}
