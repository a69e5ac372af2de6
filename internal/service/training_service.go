package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/features"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/ml"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
)

// minTrainingSamples is the floor below which a fit would be noise
const minTrainingSamples = 20

// warmupGames is how many early games per player are used as history only,
// never as training targets
const warmupGames = 3

// TrainingService assembles training sets and fits, selects and persists models
type TrainingService struct {
	repos       *repository.Repositories
	cfg         config.TrainingConfig
	policy      ml.SelectorPolicy
	logger      *logrus.Logger
	trainLogger *logger.TrainingLogger
}

// NewTrainingService creates a new training service
func NewTrainingService(repos *repository.Repositories, cfg config.TrainingConfig, log *logrus.Logger) *TrainingService {
	policy := ml.DefaultSelectorPolicy()
	if len(cfg.PreferLinear) > 0 {
		policy = ml.SelectorPolicy{PreferLinear: make(map[models.StatType]bool, len(cfg.PreferLinear))}
		for _, stat := range cfg.PreferLinear {
			if st, err := models.ParseStatType(stat); err == nil {
				policy.PreferLinear[st] = true
			}
		}
	}

	return &TrainingService{
		repos:       repos,
		cfg:         cfg,
		policy:      policy,
		logger:      log,
		trainLogger: logger.NewTrainingLogger(log),
	}
}

// TrainAll trains and activates models for every stat type
func (s *TrainingService) TrainAll(ctx context.Context, seasons []string) error {
	for _, stat := range models.AllStatTypes() {
		if _, err := s.Train(ctx, stat, seasons); err != nil {
			return fmt.Errorf("training %s: %w", stat, err)
		}
	}
	return nil
}

// Train fits both model families for one stat over the given seasons,
// selects the better fit on the hold-out split, and atomically activates it
// for the configured current season
func (s *TrainingService) Train(ctx context.Context, stat models.StatType, seasons []string) (*models.TrainedModel, error) {
	start := time.Now()

	logs, err := s.repos.GameLog.GetBySeasons(ctx, seasons)
	if err != nil {
		return nil, fmt.Errorf("loading training logs: %w", err)
	}

	set, err := s.assembleTrainingSet(stat, logs)
	if err != nil {
		s.trainLogger.LogTrainingError(string(stat), s.cfg.CurrentSeason, err.Error())
		return nil, err
	}

	s.trainLogger.LogTrainingStarted(string(stat), s.cfg.CurrentSeason, len(set.Targets))

	trainSet, validationSet := set.Split(s.cfg.ValidationFraction)

	forestCfg := ml.ForestConfig{
		NumTrees: s.cfg.NumTrees,
		Seed:     s.cfg.Seed,
		Tree: ml.TreeConfig{
			MaxDepth:        s.cfg.MaxDepth,
			MinSamplesSplit: s.cfg.MinSamplesSplit,
			MinSamplesLeaf:  s.cfg.MinSamplesLeaf,
		},
	}
	forest, err := ml.TrainForest(forestCfg, trainSet)
	if err != nil {
		s.trainLogger.LogTrainingError(string(stat), s.cfg.CurrentSeason, err.Error())
		return nil, fmt.Errorf("training forest: %w", err)
	}
	forestMetrics := ml.Evaluate(ml.ForestPredictor(forest), validationSet)
	s.trainLogger.LogModelTrained(string(stat), models.ModelTypeForest,
		float64(time.Since(start).Milliseconds()), metricsFields(forestMetrics))

	linearCfg := ml.LinearConfig{
		LearningRate: s.cfg.LearningRate,
		Iterations:   s.cfg.Iterations,
		GradientClip: s.cfg.GradientClip,
	}
	linear, err := ml.TrainLinear(linearCfg, trainSet)
	if err != nil {
		s.trainLogger.LogTrainingError(string(stat), s.cfg.CurrentSeason, err.Error())
		return nil, fmt.Errorf("training linear model: %w", err)
	}
	linearMetrics := ml.Evaluate(ml.LinearPredictor(linear), validationSet)
	s.trainLogger.LogModelTrained(string(stat), models.ModelTypeLinear,
		float64(time.Since(start).Milliseconds()), metricsFields(linearMetrics))

	selection := ml.Select(stat, forest, forestMetrics, linear, linearMetrics, s.policy)
	s.trainLogger.LogModelSelection(string(stat), selection.ModelType,
		forestMetrics.RSquared, linearMetrics.RSquared, selection.LowConfidence)

	model, err := s.buildTrainedModel(stat, selection, forestCfg, linearCfg)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Model.ReplaceActive(ctx, model); err != nil {
		return nil, fmt.Errorf("activating model: %w", err)
	}
	s.trainLogger.LogModelActivated(string(stat), model.Season, model.ModelType, model.ID.String())

	chosen := selection.ChosenMetrics()
	metrics.UpdateModelMetrics(string(stat), model.ModelType, chosen.RSquared, chosen.MAE)

	return model, nil
}

// assembleTrainingSet walks each player's games chronologically, building a
// feature vector from the games before each target game. Games from the
// configured current season carry extra sample weight.
func (s *TrainingService) assembleTrainingSet(stat models.StatType, logs []*models.GameLog) (*ml.TrainingSet, error) {
	byPlayer := make(map[uuid.UUID][]models.GameLog)
	for _, log := range logs {
		byPlayer[log.PlayerID] = append(byPlayer[log.PlayerID], *log)
	}

	names := features.CanonicalNames()
	set := &ml.TrainingSet{FeatureNames: names}

	playerIDs := make([]uuid.UUID, 0, len(byPlayer))
	for id := range byPlayer {
		playerIDs = append(playerIDs, id)
	}
	sort.Slice(playerIDs, func(i, j int) bool {
		return playerIDs[i].String() < playerIDs[j].String()
	})

	for _, playerID := range playerIDs {
		history := byPlayer[playerID]
		sort.Slice(history, func(i, j int) bool {
			return history[i].GameDate.Before(history[j].GameDate)
		})

		for i := warmupGames; i < len(history); i++ {
			target := history[i]
			builder := features.NewBuilder(features.Inputs{
				Logs: history[:i],
			}, features.Context{
				Opponent: target.Opponent,
				GameDate: target.GameDate,
				IsHome:   target.IsHome,
				DaysRest: daysRestBetween(history[i-1].GameDate, target.GameDate),
				StatType: stat,
			})
			vector := builder.Build(names)

			weight := 1.0
			if target.Season == s.cfg.CurrentSeason {
				weight = s.cfg.CurrentSeasonWeight
			}

			set.Features = append(set.Features, vector.Values)
			set.Targets = append(set.Targets, target.StatValue(stat))
			set.Weights = append(set.Weights, weight)
		}
	}

	if len(set.Targets) < minTrainingSamples {
		return nil, fmt.Errorf("%w: %d samples, need %d", models.ErrInsufficientData, len(set.Targets), minTrainingSamples)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

func (s *TrainingService) buildTrainedModel(stat models.StatType, sel ml.Selection, forestCfg ml.ForestConfig, linearCfg ml.LinearConfig) (*models.TrainedModel, error) {
	var payload json.RawMessage
	var hyper interface{}
	var err error

	switch sel.ModelType {
	case models.ModelTypeForest:
		payload, err = ml.EncodeForest(sel.Forest)
		hyper = forestCfg
	case models.ModelTypeLinear:
		payload, err = ml.EncodeLinear(sel.Linear)
		hyper = linearCfg
	default:
		return nil, ml.ErrUnknownModelType
	}
	if err != nil {
		return nil, fmt.Errorf("encoding model payload: %w", err)
	}

	hyperJSON, err := json.Marshal(hyper)
	if err != nil {
		return nil, fmt.Errorf("encoding hyperparameters: %w", err)
	}
	metricsJSON, err := json.Marshal(sel.ChosenMetrics())
	if err != nil {
		return nil, fmt.Errorf("encoding metrics: %w", err)
	}

	return &models.TrainedModel{
		ID:              uuid.New(),
		StatType:        stat,
		Season:          s.cfg.CurrentSeason,
		ModelType:       sel.ModelType,
		Hyperparameters: hyperJSON,
		Payload:         payload,
		Metrics:         metricsJSON,
		FeatureNames:    features.CanonicalNames(),
		TrainedAt:       time.Now().UTC(),
		Active:          true,
	}, nil
}

func daysRestBetween(prev, next time.Time) int {
	days := int(next.Sub(prev).Hours()/24) - 1
	if days < 0 {
		days = 0
	}
	return days
}

func metricsFields(m models.ValidationMetrics) map[string]float64 {
	return map[string]float64{
		"mae":       m.MAE,
		"rmse":      m.RMSE,
		"r_squared": m.RSquared,
		"samples":   float64(m.Samples),
	}
}
