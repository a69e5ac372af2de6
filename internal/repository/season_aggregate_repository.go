package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/models"
)

// PostgresSeasonAggregateRepository implements SeasonAggregateRepository for PostgreSQL
type PostgresSeasonAggregateRepository struct {
	db *database.DB
}

// NewPostgresSeasonAggregateRepository creates a new season aggregate repository
func NewPostgresSeasonAggregateRepository(db *database.DB) SeasonAggregateRepository {
	return &PostgresSeasonAggregateRepository{db: db}
}

// Upsert inserts or updates a player's season aggregate
func (r *PostgresSeasonAggregateRepository) Upsert(ctx context.Context, agg *models.SeasonAggregate) error {
	query := `
		INSERT INTO season_aggregates (id, player_id, season, games_played, minutes_per_game,
		                               points_per_game, rebounds_per_game, assists_per_game,
		                               usage_pct, per, effective_fg_pct, assist_ratio, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (player_id, season) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			minutes_per_game = EXCLUDED.minutes_per_game,
			points_per_game = EXCLUDED.points_per_game,
			rebounds_per_game = EXCLUDED.rebounds_per_game,
			assists_per_game = EXCLUDED.assists_per_game,
			usage_pct = EXCLUDED.usage_pct,
			per = EXCLUDED.per,
			effective_fg_pct = EXCLUDED.effective_fg_pct,
			assist_ratio = EXCLUDED.assist_ratio,
			position = EXCLUDED.position,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		agg.ID, agg.PlayerID, agg.Season, agg.GamesPlayed, agg.MinutesPerGame,
		agg.PointsPerGame, agg.ReboundsPerGame, agg.AssistsPerGame,
		agg.UsagePct, agg.PER, agg.EffectiveFGPct, agg.AssistRatio, agg.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert season aggregate: %w", err)
	}

	return nil
}

// GetByPlayerSeason retrieves a player's aggregate for a season
func (r *PostgresSeasonAggregateRepository) GetByPlayerSeason(ctx context.Context, playerID uuid.UUID, season string) (*models.SeasonAggregate, error) {
	query := `
		SELECT id, player_id, season, games_played, minutes_per_game,
		       points_per_game, rebounds_per_game, assists_per_game,
		       usage_pct, per, effective_fg_pct, assist_ratio, position, updated_at
		FROM season_aggregates
		WHERE player_id = $1 AND season = $2
	`

	agg := &models.SeasonAggregate{}
	err := r.db.GetPool().QueryRow(ctx, query, playerID, season).Scan(
		&agg.ID, &agg.PlayerID, &agg.Season, &agg.GamesPlayed, &agg.MinutesPerGame,
		&agg.PointsPerGame, &agg.ReboundsPerGame, &agg.AssistsPerGame,
		&agg.UsagePct, &agg.PER, &agg.EffectiveFGPct, &agg.AssistRatio, &agg.Position, &agg.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season aggregate: %w", err)
	}

	return agg, nil
}
