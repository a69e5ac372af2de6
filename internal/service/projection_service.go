// Package service wires repositories, data sources and the model layer into
// the application's operations.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/features"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/ml"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/projection"
	"github.com/yourusername/courtline/internal/repository"
)

// historyFetchLimit caps how many past games feed one projection
const historyFetchLimit = 200

// ProjectionRequest describes one projection query
type ProjectionRequest struct {
	PlayerID   uuid.UUID       `json:"player_id" validate:"required"`
	StatType   models.StatType `json:"stat_type" validate:"required"`
	Opponent   string          `json:"opponent" validate:"required"`
	GameDate   time.Time       `json:"game_date" validate:"required"`
	IsHome     bool            `json:"is_home"`
	DaysRest   int             `json:"days_rest"`
	Season     string          `json:"season" validate:"required"`
	MarketLine *float64        `json:"market_line,omitempty"`
	// InjuredTeammates lets callers name sidelined teammates directly; they
	// are merged with the injury feed and drive the count-based fallback when
	// the feed has no significance data
	InjuredTeammates []string `json:"injured_teammates,omitempty"`
}

// ProjectionService produces player stat projections
type ProjectionService struct {
	repos          *repository.Repositories
	sources        *datasource.Sources
	engine         *factors.Engine
	combiner       *projection.Combiner
	edgeThresholds projection.EdgeThresholds
	minConfidence  float64
	logger         *logrus.Logger
	projLogger     *logger.ProjectionLogger
	auditLogger    *logger.AuditLogger
}

// NewProjectionService creates a new projection service
func NewProjectionService(
	repos *repository.Repositories,
	sources *datasource.Sources,
	engine *factors.Engine,
	combiner *projection.Combiner,
	edgeThresholds projection.EdgeThresholds,
	minConfidence float64,
	log *logrus.Logger,
) *ProjectionService {
	if len(edgeThresholds) == 0 {
		edgeThresholds = projection.DefaultEdgeThresholds()
	}
	if minConfidence <= 0 {
		minConfidence = projection.MinimumConfidence
	}
	return &ProjectionService{
		repos:          repos,
		sources:        sources,
		engine:         engine,
		combiner:       combiner,
		edgeThresholds: edgeThresholds,
		minConfidence:  minConfidence,
		logger:         log,
		projLogger:     logger.NewProjectionLogger(log),
		auditLogger:    logger.NewAuditLogger(log),
	}
}

// Project produces a projection for one player, stat and game
func (s *ProjectionService) Project(ctx context.Context, req ProjectionRequest) (*models.Projection, error) {
	start := time.Now()

	if _, err := models.ParseStatType(string(req.StatType)); err != nil {
		return nil, err
	}

	logs, err := s.loadHistory(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		s.projLogger.LogProjectionError(req.PlayerID.String(), string(req.StatType), "no game history")
		return nil, models.ErrNoGameHistory
	}

	aggregate := s.loadAggregate(ctx, req)
	teamCtx, opponentCtx := s.loadTeamContexts(ctx, req, logs)
	injuries := mergeInjuries(s.loadInjuries(ctx, logs), req.InjuredTeammates, playerTeam(logs))

	var warnings []string

	model, predictor := s.loadModel(ctx, req, &warnings)

	modelEstimate := 0.0
	modelValid := false
	modelRSquared := 0.0
	lowQuality := false
	modelType := "baseline"
	if predictor != nil {
		vector := features.NewBuilder(features.Inputs{
			Logs:        logs,
			Aggregate:   aggregate,
			TeamCtx:     teamCtx,
			OpponentCtx: opponentCtx,
		}, features.Context{
			Opponent: req.Opponent,
			GameDate: req.GameDate,
			IsHome:   req.IsHome,
			DaysRest: req.DaysRest,
			StatType: req.StatType,
		}).Build(model.FeatureNames)

		estimate, predErr := predictor.Predict(vector.Values)
		if predErr != nil {
			warnings = append(warnings, "model prediction failed, using statistical baseline")
			s.projLogger.LogModelFallback(req.PlayerID.String(), string(req.StatType), predErr.Error())
			metrics.RecordModelFallback(string(req.StatType), "prediction_failed")
		} else {
			modelEstimate = estimate
			modelValid = true
			modelMetrics := model.GetMetrics()
			modelRSquared = modelMetrics.RSquared
			lowQuality = modelMetrics.RSquared <= 0
			modelType = model.ModelType
		}
	}

	result := s.engine.Compute(factors.Request{
		Opponent: req.Opponent,
		GameDate: req.GameDate,
		IsHome:   req.IsHome,
		DaysRest: req.DaysRest,
		StatType: req.StatType,
	}, factors.Inputs{
		Logs:        logs,
		Aggregate:   aggregate,
		TeamCtx:     teamCtx,
		OpponentCtx: opponentCtx,
		Injuries:    injuries,
	})

	value, base := s.combiner.Combine(projection.CombineInput{
		StatType:      req.StatType,
		Factors:       result,
		ModelEstimate: modelEstimate,
		ModelValid:    modelValid,
	})

	edge := 0.0
	if req.MarketLine != nil {
		edge = value - *req.MarketLine
	}

	confidence := projection.ConfidenceScore(projection.ConfidenceInput{
		ModelRSquared:   modelRSquared,
		LowQualityModel: lowQuality,
		SampleSize:      result.SampleSize,
		Multipliers:     result.Multipliers,
		Edge:            edge,
		HasLine:         req.MarketLine != nil,
	})

	_, riskLevel := projection.RiskScore(projection.RiskInput{
		ModelRSquared: modelRSquared,
		Edge:          edge,
		MarketLine:    req.MarketLine,
		Volatility:    result.Volatility,
		SampleSize:    result.SampleSize,
	})

	edge, recommendation := projection.Recommend(value, req.MarketLine, confidence, req.StatType, s.edgeThresholds)
	if confidence < s.minConfidence {
		recommendation = models.RecommendPass
	}

	proj := &models.Projection{
		ID:              uuid.New(),
		PlayerID:        req.PlayerID,
		Opponent:        req.Opponent,
		StatType:        req.StatType,
		GameDate:        req.GameDate,
		ProjectedValue:  value,
		ConfidenceScore: confidence,
		Factors:         result.FactorMap(),
		RiskLevel:       riskLevel,
		Edge:            edge,
		MarketLine:      req.MarketLine,
		Recommendation:  recommendation,
		Breakdown: models.ProjectionBreakdown{
			BaseValue:     base,
			SeasonAverage: result.SeasonAverage,
			RecentForm:    result.RecentForm,
			ModelEstimate: modelEstimate,
			ModelType:     modelType,
			ModelRSquared: modelRSquared,
			SampleSize:    result.SampleSize,
			Warnings:      warnings,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repos.ProjectionLog.Insert(ctx, proj); err != nil {
		s.logger.WithError(err).Warn("Failed to record issued projection")
	} else {
		s.auditLogger.LogProjectionIssued(proj.ID.String(), req.PlayerID.String(), string(req.StatType),
			value, req.MarketLine, string(recommendation), proj.CreatedAt)
	}

	s.projLogger.LogProjection(req.PlayerID.String(), string(req.StatType), value, confidence,
		string(riskLevel), string(recommendation), float64(time.Since(start).Milliseconds()))

	return proj, nil
}

// loadHistory returns the player's games before the projected game, oldest
// first, pulling from the stats provider when the store is empty
func (s *ProjectionService) loadHistory(ctx context.Context, req ProjectionRequest) ([]models.GameLog, error) {
	stored, err := s.repos.GameLog.GetByPlayerBefore(ctx, req.PlayerID, req.GameDate, historyFetchLimit)
	if err != nil {
		return nil, err
	}

	if len(stored) == 0 && s.sources != nil && s.sources.Stats != nil && s.sources.Stats.IsEnabled() {
		fetched, fetchErr := s.sources.Stats.FetchGameLogs(ctx, req.PlayerID, req.Season)
		if fetchErr != nil {
			s.logger.WithError(fetchErr).Warn("Stats provider fetch failed")
		} else if len(fetched) > 0 {
			refs := make([]*models.GameLog, len(fetched))
			for i := range fetched {
				refs[i] = &fetched[i]
			}
			if storeErr := s.repos.GameLog.CreateBatch(ctx, refs); storeErr != nil {
				s.logger.WithError(storeErr).Warn("Failed to persist fetched game logs")
			}
			stored, err = s.repos.GameLog.GetByPlayerBefore(ctx, req.PlayerID, req.GameDate, historyFetchLimit)
			if err != nil {
				return nil, err
			}
		}
	}

	// Repository rows come newest first; the engine wants chronological order
	logs := make([]models.GameLog, len(stored))
	for i, log := range stored {
		logs[len(stored)-1-i] = *log
	}
	return logs, nil
}

func (s *ProjectionService) loadAggregate(ctx context.Context, req ProjectionRequest) *models.SeasonAggregate {
	agg, err := s.repos.SeasonAggregate.GetByPlayerSeason(ctx, req.PlayerID, req.Season)
	if err == nil {
		return agg
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.WithError(err).Warn("Season aggregate lookup failed")
	}

	if s.sources != nil && s.sources.Stats != nil && s.sources.Stats.IsEnabled() {
		fetched, fetchErr := s.sources.Stats.FetchSeasonAggregate(ctx, req.PlayerID, req.Season)
		if fetchErr == nil {
			if storeErr := s.repos.SeasonAggregate.Upsert(ctx, fetched); storeErr != nil {
				s.logger.WithError(storeErr).Warn("Failed to persist season aggregate")
			}
			return fetched
		}
	}
	return nil
}

func (s *ProjectionService) loadTeamContexts(ctx context.Context, req ProjectionRequest, logs []models.GameLog) (*models.TeamContext, *models.TeamContext) {
	team := ""
	if len(logs) > 0 {
		team = logs[len(logs)-1].Team
	}

	var teamCtx, opponentCtx *models.TeamContext
	if team != "" {
		teamCtx = s.lookupTeamContext(ctx, team, req.Season)
	}
	opponentCtx = s.lookupTeamContext(ctx, factors.NormalizeTeam(req.Opponent), req.Season)

	if opponentCtx == nil {
		s.projLogger.LogFactorFallback(req.PlayerID.String(), string(req.StatType),
			factors.FactorOpponentDefense, "missing opponent context")
		metrics.RecordFactorFallback(factors.FactorOpponentDefense)
	}
	return teamCtx, opponentCtx
}

func (s *ProjectionService) lookupTeamContext(ctx context.Context, team, season string) *models.TeamContext {
	tc, err := s.repos.TeamContext.GetByTeamSeason(ctx, team, season)
	if err == nil {
		return tc
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.WithError(err).Warn("Team context lookup failed")
	}

	if s.sources != nil && s.sources.Stats != nil && s.sources.Stats.IsEnabled() {
		fetched, fetchErr := s.sources.Stats.FetchTeamContext(ctx, team, season)
		if fetchErr == nil {
			if storeErr := s.repos.TeamContext.Upsert(ctx, fetched); storeErr != nil {
				s.logger.WithError(storeErr).Warn("Failed to persist team context")
			}
			return fetched
		}
	}
	return nil
}

func (s *ProjectionService) loadInjuries(ctx context.Context, logs []models.GameLog) []models.InjuryStatus {
	if s.sources == nil || s.sources.Injuries == nil || len(logs) == 0 {
		return nil
	}
	injuries, err := s.sources.Injuries.FetchInjuries(ctx, playerTeam(logs))
	if err != nil {
		s.logger.WithError(err).Warn("Injury fetch failed")
		return nil
	}
	return injuries
}

// playerTeam is the team on the player's most recent game log
func playerTeam(logs []models.GameLog) string {
	if len(logs) == 0 {
		return ""
	}
	return logs[len(logs)-1].Team
}

// mergeInjuries appends caller-named teammates to the fetched reports,
// skipping names the feed already covers. Caller entries carry no
// significance, so on their own they drive the count-based factor fallback.
func mergeInjuries(fetched []models.InjuryStatus, names []string, team string) []models.InjuryStatus {
	if len(names) == 0 {
		return fetched
	}

	seen := make(map[string]struct{}, len(fetched))
	for _, inj := range fetched {
		seen[strings.ToUpper(strings.TrimSpace(inj.PlayerName))] = struct{}{}
	}

	merged := fetched
	for _, name := range names {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, models.InjuryStatus{
			PlayerName: strings.TrimSpace(name),
			Team:       team,
			Status:     "out",
			ReportedAt: time.Now().UTC(),
		})
	}
	return merged
}

// loadModel returns the active model and its predictor, or nils when serving
// must degrade to the statistical baseline
func (s *ProjectionService) loadModel(ctx context.Context, req ProjectionRequest, warnings *[]string) (*models.TrainedModel, ml.Predictor) {
	model, err := s.repos.Model.GetActive(ctx, req.StatType, req.Season)
	if err != nil {
		if errors.Is(err, models.ErrNoActiveModel) {
			*warnings = append(*warnings, "no active model, using statistical baseline")
			s.projLogger.LogModelFallback(req.PlayerID.String(), string(req.StatType), "no active model")
			metrics.RecordModelFallback(string(req.StatType), "no_active_model")
		} else {
			s.logger.WithError(err).Warn("Active model lookup failed")
			*warnings = append(*warnings, "model lookup failed, using statistical baseline")
			metrics.RecordModelFallback(string(req.StatType), "lookup_failed")
		}
		return nil, nil
	}

	// A model trained against a different feature registry must never score:
	// unknown names would silently resolve to default columns
	if !model.MatchesFeatures(features.CanonicalNames()) {
		*warnings = append(*warnings, "stored model features out of date, using statistical baseline")
		s.projLogger.LogModelFallback(req.PlayerID.String(), string(req.StatType), models.ErrFeatureMismatch.Error())
		metrics.RecordModelFallback(string(req.StatType), "feature_mismatch")
		return nil, nil
	}

	predictor, err := ml.LoadPredictor(model)
	if err != nil {
		*warnings = append(*warnings, "stored model unreadable, using statistical baseline")
		s.projLogger.LogModelFallback(req.PlayerID.String(), string(req.StatType), err.Error())
		metrics.RecordModelFallback(string(req.StatType), "unreadable")
		return nil, nil
	}

	return model, predictor
}
