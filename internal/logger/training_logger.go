// Package logger provides training-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// TrainingLogger provides dedicated logging for model training operations.
type TrainingLogger struct {
	*logrus.Entry
}

// NewTrainingLogger creates a new training logger.
func NewTrainingLogger(baseLogger *logrus.Logger) *TrainingLogger {
	return &TrainingLogger{
		Entry: baseLogger.WithField("component", "training"),
	}
}

// LogTrainingStarted logs the start of a training run.
func (tl *TrainingLogger) LogTrainingStarted(statType, season string, samples int) {
	tl.WithFields(logrus.Fields{
		"stat_type": statType,
		"season":    season,
		"samples":   samples,
	}).Info("Model training started")
}

// LogModelTrained logs completion of a single model fit.
func (tl *TrainingLogger) LogModelTrained(statType, modelType string, durationMs float64, metrics map[string]float64) {
	tl.WithFields(logrus.Fields{
		"stat_type":   statType,
		"model_type":  modelType,
		"duration_ms": durationMs,
		"metrics":     metrics,
	}).Info("Model training completed")
}

// LogModelSelection logs which model won validation.
func (tl *TrainingLogger) LogModelSelection(statType, selected string, forestRSquared, linearRSquared float64, lowConfidence bool) {
	tl.WithFields(logrus.Fields{
		"stat_type":        statType,
		"selected":         selected,
		"forest_r_squared": forestRSquared,
		"linear_r_squared": linearRSquared,
		"low_confidence":   lowConfidence,
	}).Info("Model selected for serving")
}

// LogModelActivated logs an atomic model swap.
func (tl *TrainingLogger) LogModelActivated(statType, season, modelType string, modelID string) {
	tl.WithFields(logrus.Fields{
		"stat_type":  statType,
		"season":     season,
		"model_type": modelType,
		"model_id":   modelID,
	}).Info("Model activated")
}

// LogTrainingError logs training failures.
func (tl *TrainingLogger) LogTrainingError(statType, season string, errorReason string) {
	tl.WithFields(logrus.Fields{
		"stat_type":    statType,
		"season":       season,
		"error_reason": errorReason,
	}).Error("Model training failed")
}
