package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/models"
)

// PostgresTeamContextRepository implements TeamContextRepository for PostgreSQL
type PostgresTeamContextRepository struct {
	db *database.DB
}

// NewPostgresTeamContextRepository creates a new team context repository
func NewPostgresTeamContextRepository(db *database.DB) TeamContextRepository {
	return &PostgresTeamContextRepository{db: db}
}

// Upsert inserts or updates a team's context for a season
func (r *PostgresTeamContextRepository) Upsert(ctx context.Context, tc *models.TeamContext) error {
	allowed, err := json.Marshal(tc.AllowedPerGame)
	if err != nil {
		return fmt.Errorf("failed to encode allowed_per_game: %w", err)
	}
	byPosition, err := json.Marshal(tc.AllowedByPosition)
	if err != nil {
		return fmt.Errorf("failed to encode allowed_by_position: %w", err)
	}

	query := `
		INSERT INTO team_contexts (team, season, pace, defensive_rating, allowed_per_game,
		                           allowed_by_position, team_assist_rate, team_eff_fg_pct, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (team, season) DO UPDATE SET
			pace = EXCLUDED.pace,
			defensive_rating = EXCLUDED.defensive_rating,
			allowed_per_game = EXCLUDED.allowed_per_game,
			allowed_by_position = EXCLUDED.allowed_by_position,
			team_assist_rate = EXCLUDED.team_assist_rate,
			team_eff_fg_pct = EXCLUDED.team_eff_fg_pct,
			updated_at = NOW()
	`

	_, err = r.db.GetPool().Exec(ctx, query,
		tc.Team, tc.Season, tc.Pace, tc.DefensiveRating, allowed, byPosition,
		tc.TeamAssistRate, tc.TeamEffFGPct,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team context: %w", err)
	}

	return nil
}

// GetByTeamSeason retrieves a team's context for a season
func (r *PostgresTeamContextRepository) GetByTeamSeason(ctx context.Context, team, season string) (*models.TeamContext, error) {
	query := `
		SELECT team, season, pace, defensive_rating, allowed_per_game,
		       allowed_by_position, team_assist_rate, team_eff_fg_pct, updated_at
		FROM team_contexts
		WHERE team = $1 AND season = $2
	`

	tc := &models.TeamContext{}
	var allowed, byPosition []byte
	err := r.db.GetPool().QueryRow(ctx, query, team, season).Scan(
		&tc.Team, &tc.Season, &tc.Pace, &tc.DefensiveRating, &allowed,
		&byPosition, &tc.TeamAssistRate, &tc.TeamEffFGPct, &tc.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team context: %w", err)
	}

	if err := json.Unmarshal(allowed, &tc.AllowedPerGame); err != nil {
		return nil, fmt.Errorf("failed to decode allowed_per_game: %w", err)
	}
	if err := json.Unmarshal(byPosition, &tc.AllowedByPosition); err != nil {
		return nil, fmt.Errorf("failed to decode allowed_by_position: %w", err)
	}

	return tc, nil
}
