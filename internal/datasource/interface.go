package datasource

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yourusername/courtline/internal/models"
)

// GameLogSource fetches per-game stat lines from an external provider
type GameLogSource interface {
	// FetchGameLogs retrieves a player's game logs for a season
	FetchGameLogs(ctx context.Context, playerID uuid.UUID, season string) ([]models.GameLog, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// AdvancedStatsSource fetches season-level advanced stats
type AdvancedStatsSource interface {
	FetchSeasonAggregate(ctx context.Context, playerID uuid.UUID, season string) (*models.SeasonAggregate, error)
}

// TeamContextSource fetches team pace and defensive profiles
type TeamContextSource interface {
	FetchTeamContext(ctx context.Context, team, season string) (*models.TeamContext, error)
}

// InjurySource fetches current injury reports for a team
type InjurySource interface {
	FetchInjuries(ctx context.Context, team string) ([]models.InjuryStatus, error)
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeCircuitOpen          = "circuit_open"
	ErrCodeDisabled             = "source_disabled"
)

// Sentinel errors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrSourceDisabled       = errors.New("data source disabled")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
