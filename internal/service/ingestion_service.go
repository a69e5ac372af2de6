package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
)

// IngestionService pulls provider data into the local store
type IngestionService struct {
	repos    *repository.Repositories
	sources  *datasource.Sources
	validate *validator.Validate
	logger   *logrus.Logger
}

// IngestionReport summarizes one sync run
type IngestionReport struct {
	GameLogsFetched  int
	GameLogsRejected int
	AggregateSynced  bool
	TeamsSynced      int
	InjuriesFetched  int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(repos *repository.Repositories, sources *datasource.Sources, log *logrus.Logger) *IngestionService {
	return &IngestionService{
		repos:    repos,
		sources:  sources,
		validate: validator.New(),
		logger:   log,
	}
}

// SyncPlayer fetches and stores a player's game logs and season aggregate
func (s *IngestionService) SyncPlayer(ctx context.Context, playerID uuid.UUID, season string) (*IngestionReport, error) {
	if s.sources == nil || s.sources.Stats == nil {
		return nil, fmt.Errorf("stats source not configured")
	}

	start := time.Now()
	defer func() { metrics.RecordIngestionRun(time.Since(start).Seconds()) }()

	report := &IngestionReport{}

	logs, err := s.sources.Stats.FetchGameLogs(ctx, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("fetching game logs: %w", err)
	}

	accepted := make([]*models.GameLog, 0, len(logs))
	for i := range logs {
		log := &logs[i]
		log.Team = factors.NormalizeTeam(log.Team)
		log.Opponent = factors.NormalizeTeam(log.Opponent)
		if err := s.validate.Struct(log); err != nil {
			report.GameLogsRejected++
			s.logger.WithFields(logrus.Fields{
				"game_id": log.GameID,
				"error":   err.Error(),
			}).Warn("Rejected malformed game log")
			continue
		}
		accepted = append(accepted, log)
	}
	report.GameLogsFetched = len(accepted)

	if err := s.repos.GameLog.CreateBatch(ctx, accepted); err != nil {
		return nil, fmt.Errorf("storing game logs: %w", err)
	}

	agg, err := s.sources.Stats.FetchSeasonAggregate(ctx, playerID, season)
	if err != nil {
		s.logger.WithError(err).Warn("Season aggregate fetch failed")
	} else if err := s.repos.SeasonAggregate.Upsert(ctx, agg); err != nil {
		s.logger.WithError(err).Warn("Season aggregate store failed")
	} else {
		report.AggregateSynced = true
	}

	return report, nil
}

// PollInjuries refreshes the injury reports for the given teams. The feed
// client caches per team, so a poll keeps projection requests off the wire.
// Significant injuries are logged as they appear
func (s *IngestionService) PollInjuries(ctx context.Context, teams []string) (*IngestionReport, error) {
	if s.sources == nil || s.sources.Injuries == nil {
		return nil, fmt.Errorf("injury source not configured")
	}

	report := &IngestionReport{}
	for _, team := range teams {
		injuries, err := s.sources.Injuries.FetchInjuries(ctx, factors.NormalizeTeam(team))
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"team":  team,
				"error": err.Error(),
			}).Warn("Injury poll failed for team")
			continue
		}
		report.InjuriesFetched += len(injuries)
		for _, injury := range injuries {
			if injury.IsSignificant() {
				s.logger.WithFields(logrus.Fields{
					"player": injury.PlayerName,
					"team":   injury.Team,
					"status": injury.Status,
				}).Info("Significant injury reported")
			}
		}
	}

	return report, nil
}

// SyncTeams fetches and stores context profiles for the given teams
func (s *IngestionService) SyncTeams(ctx context.Context, teams []string, season string) (*IngestionReport, error) {
	if s.sources == nil || s.sources.Stats == nil {
		return nil, fmt.Errorf("stats source not configured")
	}

	report := &IngestionReport{}
	for _, team := range teams {
		tc, err := s.sources.Stats.FetchTeamContext(ctx, factors.NormalizeTeam(team), season)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"team":  team,
				"error": err.Error(),
			}).Warn("Team context fetch failed")
			continue
		}
		if err := s.repos.TeamContext.Upsert(ctx, tc); err != nil {
			return nil, fmt.Errorf("storing team context for %s: %w", team, err)
		}
		report.TeamsSynced++
	}

	return report, nil
}
