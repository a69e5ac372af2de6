package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/courtline/internal/models"
)

// GameLogRepository defines the interface for game log data access
type GameLogRepository interface {
	Create(ctx context.Context, log *models.GameLog) error
	CreateBatch(ctx context.Context, logs []*models.GameLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameLog, error)
	GetByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]*models.GameLog, error)
	GetByPlayerBefore(ctx context.Context, playerID uuid.UUID, before time.Time, limit int) ([]*models.GameLog, error)
	GetByPlayerSeason(ctx context.Context, playerID uuid.UUID, season string) ([]*models.GameLog, error)
	GetBySeasons(ctx context.Context, seasons []string) ([]*models.GameLog, error)
}

// SeasonAggregateRepository defines the interface for season aggregate data access
type SeasonAggregateRepository interface {
	Upsert(ctx context.Context, agg *models.SeasonAggregate) error
	GetByPlayerSeason(ctx context.Context, playerID uuid.UUID, season string) (*models.SeasonAggregate, error)
}

// TeamContextRepository defines the interface for team context data access
type TeamContextRepository interface {
	Upsert(ctx context.Context, tc *models.TeamContext) error
	GetByTeamSeason(ctx context.Context, team, season string) (*models.TeamContext, error)
}

// ModelRepository defines the interface for trained model data access
type ModelRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TrainedModel, error)
	GetActive(ctx context.Context, statType models.StatType, season string) (*models.TrainedModel, error)
	ListActive(ctx context.Context) ([]*models.TrainedModel, error)
	List(ctx context.Context, statType models.StatType, season string) ([]*models.TrainedModel, error)
	// ReplaceActive deactivates the current active model for the model's
	// (stat_type, season) pair and inserts the new one as active, in a
	// single transaction.
	ReplaceActive(ctx context.Context, model *models.TrainedModel) error
	Activate(ctx context.Context, id uuid.UUID) error
}

// ProjectionLogRepository defines the interface for issued-projection data access
type ProjectionLogRepository interface {
	Insert(ctx context.Context, proj *models.Projection) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Projection, error)
	GetByPlayer(ctx context.Context, playerID uuid.UUID, statType models.StatType, limit int) ([]*models.Projection, error)
	GetPendingOutcomes(ctx context.Context, before time.Time) ([]*models.Projection, error)
	RecordOutcome(ctx context.Context, id uuid.UUID, actual float64) error
}
