package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/models"
)

const errScanGameLog = "failed to scan game log: %w"

const gameLogColumns = `id, player_id, player_name, game_id, team, opponent, game_date, is_home, season,
	       minutes, points, rebounds, assists, fg_made, fg_att, three_made, three_att, ft_made, ft_att, created_at`

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game log repository
func NewPostgresGameLogRepository(db *database.DB) GameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// Create inserts a new game log
func (r *PostgresGameLogRepository) Create(ctx context.Context, log *models.GameLog) error {
	query := `
		INSERT INTO game_logs (id, player_id, player_name, game_id, team, opponent, game_date, is_home, season,
		                       minutes, points, rebounds, assists, fg_made, fg_att, three_made, three_att, ft_made, ft_att)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		log.ID, log.PlayerID, log.PlayerName, log.GameID, log.Team, log.Opponent, log.GameDate, log.IsHome, log.Season,
		log.Minutes, log.Points, log.Rebounds, log.Assists,
		log.FieldGoalsMade, log.FieldGoalsAtt, log.ThreePointsMade, log.ThreePointsAtt, log.FreeThrowsMade, log.FreeThrowsAtt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game log: %w", err)
	}

	return nil
}

// CreateBatch inserts game logs in a single transaction, skipping duplicates
func (r *PostgresGameLogRepository) CreateBatch(ctx context.Context, logs []*models.GameLog) error {
	if len(logs) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO game_logs (id, player_id, player_name, game_id, team, opponent, game_date, is_home, season,
			                       minutes, points, rebounds, assists, fg_made, fg_att, three_made, three_att, ft_made, ft_att)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			ON CONFLICT (player_id, game_id) DO NOTHING
		`
		for _, log := range logs {
			if _, err := tx.Exec(ctx, query,
				log.ID, log.PlayerID, log.PlayerName, log.GameID, log.Team, log.Opponent, log.GameDate, log.IsHome, log.Season,
				log.Minutes, log.Points, log.Rebounds, log.Assists,
				log.FieldGoalsMade, log.FieldGoalsAtt, log.ThreePointsMade, log.ThreePointsAtt, log.FreeThrowsMade, log.FreeThrowsAtt,
			); err != nil {
				return fmt.Errorf("failed to insert game log batch item: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a game log by ID
func (r *PostgresGameLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM game_logs WHERE id = $1`, gameLogColumns)

	log := &models.GameLog{}
	err := scanGameLog(r.db.GetPool().QueryRow(ctx, query, id), log)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game log: %w", err)
	}

	return log, nil
}

// GetByPlayer retrieves a player's most recent game logs, newest first
func (r *PostgresGameLogRepository) GetByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]*models.GameLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM game_logs
		WHERE player_id = $1
		ORDER BY game_date DESC
		LIMIT $2
	`, gameLogColumns)

	return r.queryGameLogs(ctx, query, playerID, limit)
}

// GetByPlayerBefore retrieves a player's game logs strictly before the given date, newest first
func (r *PostgresGameLogRepository) GetByPlayerBefore(ctx context.Context, playerID uuid.UUID, before time.Time, limit int) ([]*models.GameLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM game_logs
		WHERE player_id = $1 AND game_date < $2
		ORDER BY game_date DESC
		LIMIT $3
	`, gameLogColumns)

	return r.queryGameLogs(ctx, query, playerID, before, limit)
}

// GetByPlayerSeason retrieves all of a player's game logs for a season, newest first
func (r *PostgresGameLogRepository) GetByPlayerSeason(ctx context.Context, playerID uuid.UUID, season string) ([]*models.GameLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM game_logs
		WHERE player_id = $1 AND season = $2
		ORDER BY game_date DESC
	`, gameLogColumns)

	return r.queryGameLogs(ctx, query, playerID, season)
}

// GetBySeasons retrieves all game logs for the given seasons, oldest first for training
func (r *PostgresGameLogRepository) GetBySeasons(ctx context.Context, seasons []string) ([]*models.GameLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM game_logs
		WHERE season = ANY($1)
		ORDER BY game_date ASC
	`, gameLogColumns)

	return r.queryGameLogs(ctx, query, seasons)
}

func (r *PostgresGameLogRepository) queryGameLogs(ctx context.Context, query string, args ...interface{}) ([]*models.GameLog, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.GameLog
	for rows.Next() {
		log := &models.GameLog{}
		if err := scanGameLog(rows, log); err != nil {
			return nil, fmt.Errorf(errScanGameLog, err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func scanGameLog(row pgx.Row, log *models.GameLog) error {
	return row.Scan(
		&log.ID, &log.PlayerID, &log.PlayerName, &log.GameID, &log.Team, &log.Opponent,
		&log.GameDate, &log.IsHome, &log.Season,
		&log.Minutes, &log.Points, &log.Rebounds, &log.Assists,
		&log.FieldGoalsMade, &log.FieldGoalsAtt, &log.ThreePointsMade, &log.ThreePointsAtt,
		&log.FreeThrowsMade, &log.FreeThrowsAtt, &log.CreatedAt,
	)
}
