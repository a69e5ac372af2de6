package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
)

// trainTimeout bounds one background training run
const trainTimeout = 2 * time.Hour

// Trainer is the slice of the training service the handler needs
type Trainer interface {
	TrainAll(ctx context.Context, seasons []string) error
	Train(ctx context.Context, stat models.StatType, seasons []string) (*models.TrainedModel, error)
}

// ModelHandler handles trained model endpoints
type ModelHandler struct {
	modelRepo   repository.ModelRepository
	trainingSvc Trainer
	logger      *logrus.Logger
}

// NewModelHandler creates a new model handler
func NewModelHandler(modelRepo repository.ModelRepository, trainingSvc Trainer, logger *logrus.Logger) *ModelHandler {
	return &ModelHandler{
		modelRepo:   modelRepo,
		trainingSvc: trainingSvc,
		logger:      logger,
	}
}

// modelSummary is the API view of a trained model, omitting the payload
type modelSummary struct {
	ID           uuid.UUID                 `json:"id"`
	StatType     models.StatType           `json:"stat_type"`
	Season       string                    `json:"season"`
	ModelType    string                    `json:"model_type"`
	Metrics      *models.ValidationMetrics `json:"metrics,omitempty"`
	FeatureCount int                       `json:"feature_count"`
	TrainedAt    time.Time                 `json:"trained_at"`
	Active       bool                      `json:"active"`
}

func summarize(m *models.TrainedModel) modelSummary {
	summary := modelSummary{
		ID:           m.ID,
		StatType:     m.StatType,
		Season:       m.Season,
		ModelType:    m.ModelType,
		FeatureCount: len(m.FeatureNames),
		TrainedAt:    m.TrainedAt,
		Active:       m.Active,
	}
	if len(m.Metrics) > 0 {
		var vm models.ValidationMetrics
		if err := json.Unmarshal(m.Metrics, &vm); err == nil {
			summary.Metrics = &vm
		}
	}
	return summary
}

// ListModels returns the active model per stat type and season
func (h *ModelHandler) ListModels(c *gin.Context) {
	active, err := h.modelRepo.ListActive(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list active models")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list models"})
		return
	}

	summaries := make([]modelSummary, 0, len(active))
	for _, m := range active {
		summaries = append(summaries, summarize(m))
	}

	metrics.UpdateActiveModels(float64(len(summaries)))

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   summaries,
	})
}

// trainRequest describes a training trigger
type trainRequest struct {
	Seasons  []string `json:"seasons" binding:"required,min=1"`
	StatType string   `json:"stat_type"`
}

// TriggerTraining starts a training run in the background and returns 202.
// Training can take minutes; callers poll GET /models for the result.
func (h *ModelHandler) TriggerTraining(c *gin.Context) {
	var request trainRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	var stat models.StatType
	if request.StatType != "" {
		parsed, err := models.ParseStatType(request.StatType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown stat type", "details": err.Error()})
			return
		}
		stat = parsed
	}

	h.logger.WithFields(logrus.Fields{
		"seasons":   request.Seasons,
		"stat_type": request.StatType,
	}).Info("Training run triggered")

	go h.runTraining(stat, request.Seasons)

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "training started",
	})
}

func (h *ModelHandler) runTraining(stat models.StatType, seasons []string) {
	ctx, cancel := context.WithTimeout(context.Background(), trainTimeout)
	defer cancel()

	start := time.Now()
	var err error
	if stat == "" {
		err = h.trainingSvc.TrainAll(ctx, seasons)
	} else {
		_, err = h.trainingSvc.Train(ctx, stat, seasons)
		metrics.RecordTrainingRun(string(stat), time.Since(start).Seconds())
	}
	if err != nil {
		h.logger.WithError(err).Error("Background training run failed")
		return
	}
	h.logger.WithField("duration", time.Since(start).String()).Info("Background training run completed")
}

// ActivateModel promotes a stored model to active for its stat type and season
func (h *ModelHandler) ActivateModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	if err := h.modelRepo.Activate(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to activate model")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to activate model"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
