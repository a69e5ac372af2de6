package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// SetupTestDB creates a test database connection and verifies it. The DSN
// comes from TEST_DATABASE_URL; tests are skipped when it is unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDBFromDSN(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	return db
}

// TeardownTestDB truncates all tables and closes the connection
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"projection_logs",
		"trained_models",
		"team_contexts",
		"season_aggregates",
		"game_logs",
	}
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Logf("failed to truncate %s: %v", table, err)
		}
	}

	db.Close()
}

// RunMigrations is a placeholder; migrations are applied with the migrate CLI:
//
//	migrate -path migrations -database "$TEST_DATABASE_URL" up
func RunMigrations(ctx context.Context, db *DB) error {
	return fmt.Errorf("use migrate CLI: migrate -path migrations -database \"your_dsn\" up")
}
