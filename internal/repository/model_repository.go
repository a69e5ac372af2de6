package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/models"
)

const trainedModelColumns = `id, stat_type, season, model_type, hyperparameters, payload, metrics,
	       feature_names, active, trained_at, created_at`

// PostgresModelRepository implements ModelRepository for PostgreSQL
type PostgresModelRepository struct {
	db *database.DB
}

// NewPostgresModelRepository creates a new model repository
func NewPostgresModelRepository(db *database.DB) ModelRepository {
	return &PostgresModelRepository{db: db}
}

// GetByID retrieves a trained model by ID
func (m *PostgresModelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TrainedModel, error) {
	query := fmt.Sprintf(`SELECT %s FROM trained_models WHERE id = $1`, trainedModelColumns)

	model := &models.TrainedModel{}
	err := scanTrainedModel(m.db.GetPool().QueryRow(ctx, query, id), model)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}

	return model, nil
}

// GetActive retrieves the active model for a stat type and season
func (m *PostgresModelRepository) GetActive(ctx context.Context, statType models.StatType, season string) (*models.TrainedModel, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trained_models
		WHERE stat_type = $1 AND season = $2 AND active = true
	`, trainedModelColumns)

	model := &models.TrainedModel{}
	err := scanTrainedModel(m.db.GetPool().QueryRow(ctx, query, statType, season), model)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNoActiveModel
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active model: %w", err)
	}

	return model, nil
}

// ListActive retrieves all active models
func (m *PostgresModelRepository) ListActive(ctx context.Context) ([]*models.TrainedModel, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trained_models
		WHERE active = true
		ORDER BY stat_type ASC, season DESC
	`, trainedModelColumns)

	return m.queryModels(ctx, query)
}

// List retrieves all models for a stat type and season, newest first
func (m *PostgresModelRepository) List(ctx context.Context, statType models.StatType, season string) ([]*models.TrainedModel, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trained_models
		WHERE stat_type = $1 AND season = $2
		ORDER BY trained_at DESC
	`, trainedModelColumns)

	return m.queryModels(ctx, query, statType, season)
}

// ReplaceActive deactivates any currently active model for the pair and
// inserts the new model as active, atomically
func (m *PostgresModelRepository) ReplaceActive(ctx context.Context, model *models.TrainedModel) error {
	return m.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		deactivate := `
			UPDATE trained_models SET active = false
			WHERE stat_type = $1 AND season = $2 AND active = true
		`
		if _, err := tx.Exec(ctx, deactivate, model.StatType, model.Season); err != nil {
			return fmt.Errorf("failed to deactivate previous model: %w", err)
		}

		insert := `
			INSERT INTO trained_models (id, stat_type, season, model_type, hyperparameters, payload,
			                            metrics, feature_names, active, trained_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, $9)
		`
		if _, err := tx.Exec(ctx, insert,
			model.ID, model.StatType, model.Season, model.ModelType,
			model.Hyperparameters, model.Payload, model.Metrics,
			model.FeatureNames, model.TrainedAt,
		); err != nil {
			return fmt.Errorf("failed to insert trained model: %w", err)
		}

		return nil
	})
}

// Activate makes the given model the active one for its stat type and season
func (m *PostgresModelRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return m.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var statType, season string
		err := tx.QueryRow(ctx, `SELECT stat_type, season FROM trained_models WHERE id = $1`, id).
			Scan(&statType, &season)
		if err == pgx.ErrNoRows {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up model: %w", err)
		}

		deactivate := `
			UPDATE trained_models SET active = false
			WHERE stat_type = $1 AND season = $2 AND active = true
		`
		if _, err := tx.Exec(ctx, deactivate, statType, season); err != nil {
			return fmt.Errorf("failed to deactivate previous model: %w", err)
		}

		if _, err := tx.Exec(ctx, `UPDATE trained_models SET active = true WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to activate model: %w", err)
		}

		return nil
	})
}

func (m *PostgresModelRepository) queryModels(ctx context.Context, query string, args ...interface{}) ([]*models.TrainedModel, error) {
	rows, err := m.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	var result []*models.TrainedModel
	for rows.Next() {
		model := &models.TrainedModel{}
		if err := scanTrainedModel(rows, model); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		result = append(result, model)
	}

	return result, rows.Err()
}

func scanTrainedModel(row pgx.Row, model *models.TrainedModel) error {
	return row.Scan(
		&model.ID, &model.StatType, &model.Season, &model.ModelType,
		&model.Hyperparameters, &model.Payload, &model.Metrics,
		&model.FeatureNames, &model.Active, &model.TrainedAt, &model.CreatedAt,
	)
}
