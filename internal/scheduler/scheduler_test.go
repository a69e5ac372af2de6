package scheduler

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewScheduler(nil, nil, nil, logger)
}

func TestScheduleRetrain(t *testing.T) {
	s := newTestScheduler()

	err := s.ScheduleRetrain("0 3 * * *", []string{"2025-26"})
	require.NoError(t, err)
	assert.Len(t, s.jobIDs, 1)
}

func TestScheduleRetrainInvalidExpression(t *testing.T) {
	s := newTestScheduler()

	err := s.ScheduleRetrain("not a cron expression", []string{"2025-26"})
	assert.Error(t, err)
	assert.Empty(t, s.jobIDs)
}

func TestScheduleOutcomeReconciliation(t *testing.T) {
	s := newTestScheduler()

	err := s.ScheduleOutcomeReconciliation("30 * * * *")
	require.NoError(t, err)
	assert.Len(t, s.jobIDs, 1)
}

func TestScheduleTeamSyncClampsInterval(t *testing.T) {
	s := newTestScheduler()

	// Intervals below a minute are raised to one minute
	err := s.ScheduleTeamSync(5, []string{"BOS"}, "2025-26")
	require.NoError(t, err)
	assert.Len(t, s.jobIDs, 1)
}

func TestStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()

	err := s.Start()
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestSchedulerLifecycle(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.ScheduleRetrain("0 3 * * *", []string{"2025-26"}))
	require.NoError(t, s.ScheduleOutcomeReconciliation("30 * * * *"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	assert.Error(t, s.Start(), "starting twice should fail")
	assert.Error(t, s.ScheduleRetrain("0 4 * * *", nil), "scheduling while running should fail")

	assert.False(t, s.GetNextRun().IsZero())
	assert.Len(t, s.Entries(), 2)

	s.Stop()
	assert.False(t, s.IsRunning())

	// Stopping again is a no-op
	s.Stop()
}

func TestGetNextRunWhenStopped(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleRetrain("0 3 * * *", []string{"2025-26"}))

	assert.True(t, s.GetNextRun().IsZero())
}
