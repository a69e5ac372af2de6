package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/models"
)

const projectionColumns = `id, player_id, opponent, stat_type, game_date, projected_value,
	       confidence_score, risk_level, edge, market_line, recommendation, factors, created_at`

// PostgresProjectionLogRepository implements ProjectionLogRepository for PostgreSQL
type PostgresProjectionLogRepository struct {
	db *database.DB
}

// NewPostgresProjectionLogRepository creates a new projection log repository
func NewPostgresProjectionLogRepository(db *database.DB) ProjectionLogRepository {
	return &PostgresProjectionLogRepository{db: db}
}

// Insert records an issued projection
func (r *PostgresProjectionLogRepository) Insert(ctx context.Context, proj *models.Projection) error {
	factors, err := json.Marshal(proj.Factors)
	if err != nil {
		return fmt.Errorf("failed to encode factors: %w", err)
	}

	query := `
		INSERT INTO projection_logs (id, player_id, opponent, stat_type, game_date, projected_value,
		                             confidence_score, risk_level, edge, market_line, recommendation, factors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.GetPool().Exec(ctx, query,
		proj.ID, proj.PlayerID, proj.Opponent, proj.StatType, proj.GameDate, proj.ProjectedValue,
		proj.ConfidenceScore, proj.RiskLevel, proj.Edge, proj.MarketLine, proj.Recommendation, factors,
	)
	if err != nil {
		return fmt.Errorf("failed to insert projection log: %w", err)
	}

	return nil
}

// GetByID retrieves a recorded projection by ID
func (r *PostgresProjectionLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Projection, error) {
	query := fmt.Sprintf(`SELECT %s FROM projection_logs WHERE id = $1`, projectionColumns)

	proj, err := scanProjection(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get projection log: %w", err)
	}

	return proj, nil
}

// GetByPlayer retrieves a player's recorded projections for a stat, newest first
func (r *PostgresProjectionLogRepository) GetByPlayer(ctx context.Context, playerID uuid.UUID, statType models.StatType, limit int) ([]*models.Projection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM projection_logs
		WHERE player_id = $1 AND stat_type = $2
		ORDER BY game_date DESC
		LIMIT $3
	`, projectionColumns)

	rows, err := r.db.GetPool().Query(ctx, query, playerID, statType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query projection logs: %w", err)
	}
	defer rows.Close()

	return collectProjections(rows)
}

// GetPendingOutcomes retrieves projections for past games with no recorded result
func (r *PostgresProjectionLogRepository) GetPendingOutcomes(ctx context.Context, before time.Time) ([]*models.Projection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM projection_logs
		WHERE actual_value IS NULL AND game_date < $1
		ORDER BY game_date ASC
	`, projectionColumns)

	rows, err := r.db.GetPool().Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending outcomes: %w", err)
	}
	defer rows.Close()

	return collectProjections(rows)
}

// RecordOutcome stores the actual stat value for an issued projection
func (r *PostgresProjectionLogRepository) RecordOutcome(ctx context.Context, id uuid.UUID, actual float64) error {
	tag, err := r.db.GetPool().Exec(ctx,
		`UPDATE projection_logs SET actual_value = $2 WHERE id = $1`, id, actual)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func collectProjections(rows pgx.Rows) ([]*models.Projection, error) {
	var projections []*models.Projection
	for rows.Next() {
		proj, err := scanProjection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection log: %w", err)
		}
		projections = append(projections, proj)
	}
	return projections, rows.Err()
}

func scanProjection(row pgx.Row) (*models.Projection, error) {
	proj := &models.Projection{}
	var factors []byte
	err := row.Scan(
		&proj.ID, &proj.PlayerID, &proj.Opponent, &proj.StatType, &proj.GameDate, &proj.ProjectedValue,
		&proj.ConfidenceScore, &proj.RiskLevel, &proj.Edge, &proj.MarketLine, &proj.Recommendation,
		&factors, &proj.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(factors) > 0 {
		if err := json.Unmarshal(factors, &proj.Factors); err != nil {
			return nil, fmt.Errorf("failed to decode factors: %w", err)
		}
	}
	return proj, nil
}
