package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/service"
)

// Scheduler manages the recurring background jobs: nightly retraining,
// outcome reconciliation, and league data sync
type Scheduler struct {
	cron        *cron.Cron
	trainingSvc *service.TrainingService
	outcomeSvc  *service.OutcomeService
	ingestSvc   *service.IngestionService
	logger      *logrus.Logger
	mu          sync.RWMutex
	isRunning   bool
	jobIDs      []cron.EntryID
}

// NewScheduler creates a scheduler over the given services
func NewScheduler(trainingSvc *service.TrainingService, outcomeSvc *service.OutcomeService, ingestSvc *service.IngestionService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		trainingSvc: trainingSvc,
		outcomeSvc:  outcomeSvc,
		ingestSvc:   ingestSvc,
		logger:      logger,
		jobIDs:      make([]cron.EntryID, 0),
	}
}

// ScheduleRetrain schedules the nightly model retraining job
func (s *Scheduler) ScheduleRetrain(cronExpression string, seasons []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()

		s.logger.WithField("seasons", seasons).Info("Starting scheduled model retraining")

		if err := s.trainingSvc.TrainAll(ctx, seasons); err != nil {
			s.logger.WithError(err).Error("Scheduled retraining failed")
			return
		}
		s.logger.Info("Scheduled retraining completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add retrain job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled model retraining job")

	return nil
}

// ScheduleOutcomeReconciliation schedules the job that matches pending
// projections to final box scores
func (s *Scheduler) ScheduleOutcomeReconciliation(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		// Only reconcile projections whose games have finished
		report, err := s.outcomeSvc.Reconcile(ctx, time.Now().Add(-6*time.Hour))
		if err != nil {
			s.logger.WithError(err).Error("Scheduled outcome reconciliation failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"reconciled": report.Reconciled,
			"unmatched":  report.Unmatched,
			"hits":       report.Hits,
		}).Info("Scheduled outcome reconciliation completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add reconciliation job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled outcome reconciliation job")

	return nil
}

// ScheduleTeamSync schedules a recurring sync of league team contexts
func (s *Scheduler) ScheduleTeamSync(intervalSeconds int, teams []string, season string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if intervalSeconds < 60 {
		intervalSeconds = 60
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(intervalSeconds-1)*time.Second)
		defer cancel()

		report, err := s.ingestSvc.SyncTeams(ctx, teams, season)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled team sync failed")
			return
		}
		s.logger.WithField("teams_synced", report.TeamsSynced).Debug("Scheduled team sync completed")
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add team sync job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("interval_seconds", intervalSeconds).Info("Scheduled team sync job")

	return nil
}

// ScheduleInjuryPoll schedules a recurring refresh of team injury reports
func (s *Scheduler) ScheduleInjuryPoll(intervalSeconds int, teams []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if intervalSeconds < 30 {
		intervalSeconds = 30
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(intervalSeconds-1)*time.Second)
		defer cancel()

		report, err := s.ingestSvc.PollInjuries(ctx, teams)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled injury poll failed")
			return
		}
		s.logger.WithField("injuries_fetched", report.InjuriesFetched).Debug("Scheduled injury poll completed")
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add injury poll job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("interval_seconds", intervalSeconds).Info("Scheduled injury poll job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
