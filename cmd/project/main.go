// Package main provides a one-shot projection CLI for ad hoc queries.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/factors"
	applog "github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/projection"
	"github.com/yourusername/courtline/internal/repository"
	"github.com/yourusername/courtline/internal/service"
)

var (
	configFile  string
	playerFlag  string
	statFlag    string
	oppFlag     string
	dateFlag    string
	homeFlag    bool
	restFlag    int
	seasonFlag  string
	lineFlag    float64
	injuredFlag []string
	jsonFlag    bool
)

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&playerFlag, "player", "", "Player UUID (required)")
	rootCmd.Flags().StringVar(&statFlag, "stat", "points", "Stat type to project")
	rootCmd.Flags().StringVar(&oppFlag, "opponent", "", "Opponent team (required)")
	rootCmd.Flags().StringVar(&dateFlag, "date", "", "Game date, YYYY-MM-DD (default: tomorrow)")
	rootCmd.Flags().BoolVar(&homeFlag, "home", false, "Player's team is at home")
	rootCmd.Flags().IntVar(&restFlag, "rest", 1, "Days of rest before the game")
	rootCmd.Flags().StringVar(&seasonFlag, "season", "", "Season (default: configured current season)")
	rootCmd.Flags().Float64Var(&lineFlag, "line", 0, "Market line to compare against")
	rootCmd.Flags().StringSliceVar(&injuredFlag, "injured", nil, "Known injured teammates (comma separated)")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the full projection as JSON")

	_ = rootCmd.MarkFlagRequired("player")
	_ = rootCmd.MarkFlagRequired("opponent")
}

var rootCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a player stat for an upcoming game",
	RunE:  runProjection,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runProjection(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := applog.NewLogger(cfg.App.LogLevel)
	logger.SetOutput(os.Stderr)

	playerID, err := uuid.Parse(playerFlag)
	if err != nil {
		return fmt.Errorf("invalid player id: %w", err)
	}

	gameDate := time.Now().Add(24 * time.Hour)
	if dateFlag != "" {
		gameDate, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid game date: %w", err)
		}
	}

	season := seasonFlag
	if season == "" {
		season = cfg.Training.CurrentSeason
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	sources, err := datasource.NewFactory(cfg, logger).Build()
	if err != nil {
		return fmt.Errorf("failed to initialize data sources: %w", err)
	}

	projectionSvc := service.NewProjectionService(
		repos,
		sources,
		factors.NewEngine(factors.DefaultConfig()),
		projection.NewCombiner(projection.WeightsFromConfig(cfg.Projection.Weights)),
		nil,
		cfg.Projection.MinConfidence,
		logger,
	)

	request := service.ProjectionRequest{
		PlayerID:         playerID,
		StatType:         models.StatType(statFlag),
		Opponent:         oppFlag,
		GameDate:         gameDate,
		IsHome:           homeFlag,
		DaysRest:         restFlag,
		Season:           season,
		InjuredTeammates: injuredFlag,
	}
	if cmd.Flags().Changed("line") {
		request.MarketLine = &lineFlag
	}

	proj, err := projectionSvc.Project(ctx, request)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	if jsonFlag {
		return json.NewEncoder(os.Stdout).Encode(proj)
	}

	printProjection(proj)
	return nil
}

func printProjection(p *models.Projection) {
	fmt.Printf("Projection: %.1f %s vs %s on %s\n",
		p.ProjectedValue, p.StatType, p.Opponent, p.GameDate.Format("2006-01-02"))
	fmt.Printf("  Confidence: %.2f  Risk: %s\n", p.ConfidenceScore, p.RiskLevel)
	if p.MarketLine != nil {
		fmt.Printf("  Line: %.1f  Edge: %+.1f  Recommendation: %s\n",
			*p.MarketLine, p.Edge, p.Recommendation)
	}
	fmt.Printf("  Base: %.1f  Model: %s (R2 %.3f)  Sample: %d games\n",
		p.Breakdown.BaseValue, orBaseline(p.Breakdown.ModelType),
		p.Breakdown.ModelRSquared, p.Breakdown.SampleSize)
	for _, w := range p.Breakdown.Warnings {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
	}
}

func orBaseline(modelType string) string {
	if modelType == "" {
		return "baseline"
	}
	return modelType
}
