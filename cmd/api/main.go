// Package main provides the entry point for the projection API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/api"
	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/factors"
	"github.com/yourusername/courtline/internal/health"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/projection"
	"github.com/yourusername/courtline/internal/repository"
	"github.com/yourusername/courtline/internal/scheduler"
	"github.com/yourusername/courtline/internal/service"
	"github.com/yourusername/courtline/internal/tracing"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Courtline projection API starting")

	// Initialize tracing
	if err := tracing.Initialize(tracing.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Enabled:     os.Getenv("AWS_XRAY_ENABLED") == "true",
		DaemonAddr:  os.Getenv("AWS_XRAY_DAEMON_ADDR"),
	}, appLog); err != nil {
		appLog.WithError(err).Warn("Tracing initialization failed; continuing without tracing")
	}

	// Initialize database connection
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	// Initialize repositories
	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Initialize data sources
	sources, err := datasource.NewFactory(cfg, appLog).Build()
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize data sources")
	}

	// Build the projection pipeline
	engine := factors.NewEngine(factorConfig(cfg))
	combiner := projection.NewCombiner(projection.WeightsFromConfig(cfg.Projection.Weights))

	projectionSvc := service.NewProjectionService(
		repos,
		sources,
		engine,
		combiner,
		edgeThresholds(cfg, appLog),
		cfg.Projection.MinConfidence,
		appLog,
	)
	trainingSvc := service.NewTrainingService(repos, cfg.Training, appLog)
	outcomeSvc := service.NewOutcomeService(repos, appLog)
	ingestionSvc := service.NewIngestionService(repos, sources, appLog)

	// Start background jobs
	sched := scheduler.NewScheduler(trainingSvc, outcomeSvc, ingestionSvc, appLog)
	seasons := trainingSeasons(cfg)
	if err := sched.ScheduleRetrain(cfg.DataIngestion.Schedule.RetrainCron, seasons); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule retraining")
	}
	if cfg.Features.OutcomeLoggingEnabled {
		if err := sched.ScheduleOutcomeReconciliation("@every 1h"); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule outcome reconciliation")
		}
	}
	if interval := cfg.DataIngestion.Schedule.TeamSyncIntervalSeconds; interval > 0 {
		if err := sched.ScheduleTeamSync(interval, factors.LeagueTeams(), cfg.Training.CurrentSeason); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule team sync")
		}
	}
	if sources.Injuries != nil {
		interval := cfg.DataIngestion.Schedule.InjuryPollIntervalSeconds
		if err := sched.ScheduleInjuryPoll(interval, factors.LeagueTeams()); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule injury poll")
		}
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	// Stream live injury updates when enabled
	if cfg.Features.InjuryStreamEnabled {
		if src, ok := cfg.Source("injury_feed"); ok && src.Enabled {
			stream := datasource.NewInjuryStreamClient(src.BaseURL, src.APIKey, appLog)
			stream.AddHandler(func(injury models.InjuryStatus) error {
				appLog.WithFields(logrus.Fields{
					"player": injury.PlayerName,
					"team":   injury.Team,
					"status": injury.Status,
				}).Info("Live injury update received")
				return nil
			})
			go func() {
				if err := stream.ConnectWithRetry(ctx); err != nil {
					appLog.WithError(err).Warn("Injury stream unavailable; relying on polled feed")
					return
				}
				if err := stream.Subscribe(ctx, nil); err != nil {
					appLog.WithError(err).Warn("Injury stream subscription failed")
				}
			}()
			defer stream.Close()
		}
	}

	// Start health check server
	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		DB:          db,
		Models:      &modelChecker{repo: repos.Model},
	})
	if err := healthSrv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Start HTTP API
	projectionHandler := api.NewProjectionHandler(projectionSvc, appLog)
	modelHandler := api.NewModelHandler(repos.Model, trainingSvc, appLog)
	router := api.NewRouter(cfg, projectionHandler, modelHandler, appLog)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.API.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.API.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		appLog.WithField("port", cfg.API.Port).Info("API server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("API server error")
		}
	}()

	healthSrv.SetReady(true)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthSrv.SetReady(false)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Error during API server shutdown")
	}

	appLog.Info("Courtline projection API shut down successfully")
}

// modelChecker adapts the model repository to the health server check
type modelChecker struct {
	repo repository.ModelRepository
}

func (m *modelChecker) CountActive(ctx context.Context) (int, error) {
	active, err := m.repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

// factorConfig maps the projection section onto factor engine thresholds
func factorConfig(cfg *config.Config) factors.Config {
	fc := factors.DefaultConfig()
	if cfg.Projection.RecentFormGames > 0 {
		fc.RecentFormGames = cfg.Projection.RecentFormGames
	}
	if cfg.Projection.FormDecay > 0 {
		fc.FormDecay = cfg.Projection.FormDecay
	}
	if cfg.Projection.MinHeadToHead > 0 {
		fc.MinHeadToHead = cfg.Projection.MinHeadToHead
	}
	return fc
}

// edgeThresholds parses the configured per-stat edge thresholds
func edgeThresholds(cfg *config.Config, log *logrus.Logger) projection.EdgeThresholds {
	thresholds := make(projection.EdgeThresholds, len(cfg.Projection.EdgeThresholds))
	for name, value := range cfg.Projection.EdgeThresholds {
		stat, err := models.ParseStatType(name)
		if err != nil {
			log.WithField("stat_type", name).Warn("Ignoring edge threshold for unknown stat type")
			continue
		}
		thresholds[stat] = value
	}
	return thresholds
}

// trainingSeasons returns the seasons the nightly retrain job covers
func trainingSeasons(cfg *config.Config) []string {
	current := cfg.Training.CurrentSeason
	if len(cfg.Training.Seasons) > 0 {
		return cfg.Training.Seasons
	}
	return []string{current}
}
