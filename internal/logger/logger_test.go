package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestProjectionLoggerLogProjection(t *testing.T) {
	log, buf := setupTestLogger()
	projLogger := NewProjectionLogger(log)

	projLogger.LogProjection("player_001", "points", 24.5, 0.75, "LOW", "OVER", 12.3)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "player_001", logEntry["player_id"])
	assert.Equal(t, "projection", logEntry["component"])
	assert.Equal(t, "OVER", logEntry["recommendation"])
}

func TestProjectionLoggerFactorFallback(t *testing.T) {
	log, buf := setupTestLogger()
	projLogger := NewProjectionLogger(log)

	projLogger.LogFactorFallback("player_001", "assists", "pace", "missing team context")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "pace", logEntry["factor"])
	assert.Equal(t, "debug", logEntry["level"])
}

func TestTrainingLoggerModelSelection(t *testing.T) {
	log, buf := setupTestLogger()
	trainLogger := NewTrainingLogger(log)

	trainLogger.LogModelSelection("rebounds", "linear", 0.61, 0.66, false)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "training", logEntry["component"])
	assert.Equal(t, "linear", logEntry["selected"])
	assert.InDelta(t, 0.66, logEntry["linear_r_squared"], 1e-9)
}

func TestAuditLoggerProjectionIssued(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	line := 22.5
	auditLogger.LogProjectionIssued("proj_123", "player_001", "points", 24.1, &line, "OVER", time.Now())

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.InDelta(t, 22.5, logEntry["market_line"], 1e-9)
}

func TestAuditLoggerProjectionIssuedNoLine(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogProjectionIssued("proj_124", "player_001", "assists", 6.0, nil, "PASS", time.Now())

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	_, present := logEntry["market_line"]
	assert.False(t, present)
}
