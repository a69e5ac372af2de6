package repository

import (
	"fmt"

	"github.com/yourusername/courtline/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	GameLog         GameLogRepository
	SeasonAggregate SeasonAggregateRepository
	TeamContext     TeamContextRepository
	Model           ModelRepository
	ProjectionLog   ProjectionLogRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		GameLog:         NewPostgresGameLogRepository(db),
		SeasonAggregate: NewPostgresSeasonAggregateRepository(db),
		TeamContext:     NewPostgresTeamContextRepository(db),
		Model:           NewPostgresModelRepository(db),
		ProjectionLog:   NewPostgresProjectionLogRepository(db),
	}, nil
}
