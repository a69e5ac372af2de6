// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogProjectionIssued logs an issued projection for later outcome reconciliation.
func (al *AuditLogger) LogProjectionIssued(projectionID, playerID, statType string, value float64, marketLine *float64, recommendation string, timestamp time.Time) {
	fields := logrus.Fields{
		"projection_id":  projectionID,
		"player_id":      playerID,
		"stat_type":      statType,
		"value":          value,
		"recommendation": recommendation,
		"timestamp":      timestamp.Unix(),
	}
	if marketLine != nil {
		fields["market_line"] = *marketLine
	}
	al.WithFields(fields).Info("Projection issued")
}

// LogOutcomeRecorded logs the actual result matched against a projection.
func (al *AuditLogger) LogOutcomeRecorded(projectionID string, projected, actual float64, hit bool) {
	al.WithFields(logrus.Fields{
		"projection_id": projectionID,
		"projected":     projected,
		"actual":        actual,
		"hit":           hit,
	}).Info("Projection outcome recorded")
}

// LogModelSwap logs a model activation change for a stat and season.
func (al *AuditLogger) LogModelSwap(statType, season string, oldModelID, newModelID string) {
	al.WithFields(logrus.Fields{
		"stat_type":    statType,
		"season":       season,
		"old_model_id": oldModelID,
		"new_model_id": newModelID,
	}).Info("Active model swapped")
}

// LogCircuitBreakerEvent logs data source circuit breaker events.
func (al *AuditLogger) LogCircuitBreakerEvent(source, eventType, reason string) {
	al.WithFields(logrus.Fields{
		"source":     source,
		"event_type": eventType,
		"reason":     reason,
	}).Warn("Circuit breaker event recorded")
}
