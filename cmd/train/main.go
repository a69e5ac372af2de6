// Package main provides the model training CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/evaluation"
	"github.com/yourusername/courtline/internal/factors"
	applog "github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/ml"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/projection"
	"github.com/yourusername/courtline/internal/repository"
	"github.com/yourusername/courtline/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile string
	statFlag   string
	seasonFlag []string
	startFlag  string
	endFlag    string
	windowFlag int
	jsonFlag   bool
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	trainCmd.Flags().StringVar(&statFlag, "stat", "", "Train a single stat type (default: all)")
	trainCmd.Flags().StringSliceVar(&seasonFlag, "seasons", nil, "Seasons to train on (default: configured seasons)")
	evaluateCmd.Flags().StringVar(&statFlag, "stat", "points", "Stat type to evaluate")
	evaluateCmd.Flags().StringSliceVar(&seasonFlag, "seasons", nil, "Seasons to replay (default: configured seasons)")
	evaluateCmd.Flags().StringVar(&startFlag, "start", "", "Replay start date (YYYY-MM-DD)")
	evaluateCmd.Flags().StringVar(&endFlag, "end", "", "Replay end date (YYYY-MM-DD)")
	evaluateCmd.Flags().IntVar(&windowFlag, "window", 14, "Window length in days")
	evaluateCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the full result as JSON")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(evaluateCmd)
}

var rootCmd = &cobra.Command{
	Use:     "train",
	Short:   "Train and manage projection models",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train models from stored game logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Hour)
		defer cancel()

		trainingSvc := service.NewTrainingService(repos, cfg.Training, logger)
		seasons := seasonFlag
		if len(seasons) == 0 {
			seasons = cfg.Training.Seasons
		}
		if len(seasons) == 0 {
			seasons = []string{cfg.Training.CurrentSeason}
		}

		start := time.Now()
		if statFlag == "" {
			if err := trainingSvc.TrainAll(ctx, seasons); err != nil {
				return fmt.Errorf("training failed: %w", err)
			}
		} else {
			stat, err := models.ParseStatType(statFlag)
			if err != nil {
				return err
			}
			model, err := trainingSvc.Train(ctx, stat, seasons)
			if err != nil {
				return fmt.Errorf("training %s failed: %w", stat, err)
			}
			fmt.Printf("Trained %s model %s (%s)\n", model.StatType, model.ID, model.ModelType)
		}

		fmt.Printf("Training completed in %s\n", time.Since(start).Round(time.Second))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active model per stat type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		active, err := repos.Model.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active models: %w", err)
		}

		if len(active) == 0 {
			fmt.Println("No active models; projections run on the statistical baseline")
			return nil
		}

		fmt.Printf("%-10s %-8s %-36s %-8s %-10s %-10s %s\n",
			"STAT", "SEASON", "ID", "TYPE", "R2", "MAE", "TRAINED")
		for _, m := range active {
			var vm models.ValidationMetrics
			if len(m.Metrics) > 0 {
				_ = json.Unmarshal(m.Metrics, &vm)
			}
			fmt.Printf("%-10s %-8s %-36s %-8s %-10.3f %-10.2f %s\n",
				m.StatType, m.Season, m.ID, m.ModelType,
				vm.RSquared, vm.MAE, m.TrainedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <model-id>",
	Short: "Promote a stored model to active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid model id: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := repos.Model.Activate(ctx, id); err != nil {
			return fmt.Errorf("failed to activate model: %w", err)
		}

		fmt.Printf("Model %s activated\n", id)
		return nil
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Replay historical games through the projection pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()

		stat, err := models.ParseStatType(statFlag)
		if err != nil {
			return err
		}
		start, err := time.Parse("2006-01-02", startFlag)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		end, err := time.Parse("2006-01-02", endFlag)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}

		seasons := seasonFlag
		if len(seasons) == 0 {
			seasons = cfg.Training.Seasons
		}
		if len(seasons) == 0 {
			seasons = []string{cfg.Training.CurrentSeason}
		}

		stored, err := repos.GameLog.GetBySeasons(ctx, seasons)
		if err != nil {
			return fmt.Errorf("loading game logs: %w", err)
		}
		logs := make([]models.GameLog, len(stored))
		for i, log := range stored {
			logs[i] = *log
		}

		var predictor ml.Predictor
		var featNames []string
		if model, err := repos.Model.GetActive(ctx, stat, cfg.Training.CurrentSeason); err == nil {
			if p, loadErr := ml.LoadPredictor(model); loadErr == nil {
				predictor = p
				featNames = model.FeatureNames
			}
		}
		if predictor == nil {
			fmt.Println("No usable active model; evaluating the statistical baseline")
		}

		engine := evaluation.NewEngine(
			factors.NewEngine(factors.DefaultConfig()),
			projection.NewCombiner(projection.WeightsFromConfig(cfg.Projection.Weights)),
			predictor,
			featNames,
			logger,
		)

		evalCfg := evaluation.DefaultConfig(stat, start, end)
		evalCfg.WindowDays = windowFlag
		evalCfg.StepDays = windowFlag
		result, err := engine.Run(ctx, evalCfg, logs)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		if jsonFlag {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%-8s %-12s %-12s %-8s %-8s %-8s\n", "WINDOW", "START", "END", "SAMPLES", "MAE", "RMSE")
		for _, w := range result.Windows {
			fmt.Printf("%-8d %-12s %-12s %-8d %-8.2f %-8.2f\n",
				w.WindowID, w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"),
				w.Metrics.Samples, w.Metrics.MAE, w.Metrics.RMSE)
		}
		fmt.Printf("\nOverall: samples=%d mae=%.2f rmse=%.2f consistency=%.3f\n",
			result.Overall.Samples, result.Overall.MAE, result.Overall.RMSE, result.ConsistencyScore)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	logger = applog.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}
