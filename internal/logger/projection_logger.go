// Package logger provides projection-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ProjectionLogger provides dedicated logging for projection operations.
type ProjectionLogger struct {
	*logrus.Entry
}

// NewProjectionLogger creates a new projection logger.
func NewProjectionLogger(baseLogger *logrus.Logger) *ProjectionLogger {
	return &ProjectionLogger{
		Entry: baseLogger.WithField("component", "projection"),
	}
}

// LogProjection logs a completed projection.
func (pl *ProjectionLogger) LogProjection(playerID, statType string, value, confidence float64, riskLevel, recommendation string, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"player_id":      playerID,
		"stat_type":      statType,
		"value":          value,
		"confidence":     confidence,
		"risk_level":     riskLevel,
		"recommendation": recommendation,
		"duration_ms":    durationMs,
	}).Info("Projection completed")
}

// LogModelFallback logs serving degradation to the statistical baseline.
func (pl *ProjectionLogger) LogModelFallback(playerID, statType, reason string) {
	pl.WithFields(logrus.Fields{
		"player_id": playerID,
		"stat_type": statType,
		"reason":    reason,
	}).Warn("Falling back to statistical baseline")
}

// LogFactorFallback logs a contextual factor resolving to its neutral value.
func (pl *ProjectionLogger) LogFactorFallback(playerID, statType, factor, reason string) {
	pl.WithFields(logrus.Fields{
		"player_id": playerID,
		"stat_type": statType,
		"factor":    factor,
		"reason":    reason,
	}).Debug("Factor defaulted to neutral")
}

// LogProjectionError logs projection failures.
func (pl *ProjectionLogger) LogProjectionError(playerID, statType, errorReason string) {
	pl.WithFields(logrus.Fields{
		"player_id":    playerID,
		"stat_type":    statType,
		"error_reason": errorReason,
	}).Error("Projection failed")
}
