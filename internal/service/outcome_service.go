package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
)

// OutcomeService reconciles issued projections against actual results once
// the games have been played
type OutcomeService struct {
	repos       *repository.Repositories
	logger      *logrus.Logger
	auditLogger *logger.AuditLogger
}

// OutcomeReport summarizes one reconciliation run
type OutcomeReport struct {
	Reconciled int
	Unmatched  int
	Hits       int
}

// NewOutcomeService creates a new outcome service
func NewOutcomeService(repos *repository.Repositories, log *logrus.Logger) *OutcomeService {
	return &OutcomeService{
		repos:       repos,
		logger:      log,
		auditLogger: logger.NewAuditLogger(log),
	}
}

// Reconcile fills in actual stat values for projections whose games are in
// the past, using stored game logs
func (s *OutcomeService) Reconcile(ctx context.Context, before time.Time) (*OutcomeReport, error) {
	pending, err := s.repos.ProjectionLog.GetPendingOutcomes(ctx, before)
	if err != nil {
		return nil, err
	}

	report := &OutcomeReport{}
	for _, proj := range pending {
		actual, found, err := s.lookupActual(ctx, proj)
		if err != nil {
			return report, err
		}
		if !found {
			report.Unmatched++
			continue
		}

		if err := s.repos.ProjectionLog.RecordOutcome(ctx, proj.ID, actual); err != nil {
			return report, err
		}
		report.Reconciled++
		metrics.RecordOutcome()

		hit := recommendationHit(proj, actual)
		if hit {
			report.Hits++
		}
		s.auditLogger.LogOutcomeRecorded(proj.ID.String(), proj.ProjectedValue, actual, hit)
	}

	s.logger.WithFields(logrus.Fields{
		"reconciled": report.Reconciled,
		"unmatched":  report.Unmatched,
		"hits":       report.Hits,
	}).Info("Projection outcomes reconciled")

	return report, nil
}

// lookupActual finds the game log matching a projection's player, opponent
// and date
func (s *OutcomeService) lookupActual(ctx context.Context, proj *models.Projection) (float64, bool, error) {
	dayStart := proj.GameDate.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(48 * time.Hour)

	logs, err := s.repos.GameLog.GetByPlayerBefore(ctx, proj.PlayerID, dayEnd, 10)
	if err != nil {
		return 0, false, err
	}

	for _, log := range logs {
		if log.GameDate.Before(dayStart) {
			continue
		}
		if !factors.SameTeam(log.Opponent, proj.Opponent) {
			continue
		}
		return log.StatValue(proj.StatType), true, nil
	}
	return 0, false, nil
}

// recommendationHit reports whether an OVER/UNDER call landed on the right
// side of the line
func recommendationHit(proj *models.Projection, actual float64) bool {
	if proj.MarketLine == nil {
		return false
	}
	switch proj.Recommendation {
	case models.RecommendOver:
		return actual > *proj.MarketLine
	case models.RecommendUnder:
		return actual < *proj.MarketLine
	default:
		return false
	}
}
