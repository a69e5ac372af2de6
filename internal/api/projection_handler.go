// Package api exposes the projection engine over HTTP using gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/service"
)

// ProjectionProducer is the slice of the projection service the handler needs
type ProjectionProducer interface {
	Project(ctx context.Context, req service.ProjectionRequest) (*models.Projection, error)
}

// ProjectionHandler handles projection endpoints
type ProjectionHandler struct {
	projectionSvc ProjectionProducer
	logger        *logrus.Logger
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(projectionSvc ProjectionProducer, logger *logrus.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		projectionSvc: projectionSvc,
		logger:        logger,
	}
}

// CreateProjection produces a projection for one player, stat and game
func (h *ProjectionHandler) CreateProjection(c *gin.Context) {
	start := time.Now()

	var request service.ProjectionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.WithError(err).Warn("Invalid projection request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	proj, err := h.projectionSvc.Project(c.Request.Context(), request)
	if err != nil {
		h.respondProjectionError(c, err)
		return
	}

	metrics.RecordProjectionIssued(string(proj.StatType), string(proj.Recommendation), time.Since(start).Seconds())

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   proj,
		"meta": gin.H{
			"processing_time_ms": time.Since(start).Milliseconds(),
		},
	})
}

func (h *ProjectionHandler) respondProjectionError(c *gin.Context, err error) {
	metrics.RecordProjectionError()

	switch {
	case errors.Is(err, models.ErrUnknownStatType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown stat type", "details": err.Error()})
	case errors.Is(err, models.ErrNoGameHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no game history for player", "details": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "details": err.Error()})
	default:
		h.logger.WithError(err).Error("Projection request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to produce projection"})
	}
}
