// Package config provides configuration management for the Courtline application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	API           APIConfig           `mapstructure:"api" validate:"required"`
	Training      TrainingConfig      `mapstructure:"training" validate:"required"`
	Projection    ProjectionConfig    `mapstructure:"projection" validate:"required"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Features      FeaturesConfig      `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// APIConfig represents the HTTP API server configuration
type APIConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// TrainingConfig represents model training configuration
type TrainingConfig struct {
	NumTrees            int      `mapstructure:"num_trees" validate:"required,gt=0"`
	MaxDepth            int      `mapstructure:"max_depth" validate:"required,gt=0,lte=12"`
	MinSamplesSplit     int      `mapstructure:"min_samples_split" validate:"required,gt=1"`
	MinSamplesLeaf      int      `mapstructure:"min_samples_leaf" validate:"required,gt=0"`
	LearningRate        float64  `mapstructure:"learning_rate" validate:"required,gt=0"`
	Iterations          int      `mapstructure:"iterations" validate:"required,gt=0"`
	GradientClip        float64  `mapstructure:"gradient_clip" validate:"required,gt=0"`
	ValidationFraction  float64  `mapstructure:"validation_fraction" validate:"required,gt=0,lt=1"`
	CurrentSeason       string   `mapstructure:"current_season" validate:"required"`
	Seasons             []string `mapstructure:"seasons"`
	CurrentSeasonWeight float64  `mapstructure:"current_season_weight" validate:"required,gte=1"`
	Seed                int64    `mapstructure:"seed"`
	PreferLinear        []string `mapstructure:"prefer_linear" validate:"omitempty,stattypes"`
}

// ProjectionConfig represents projection and recommendation configuration
type ProjectionConfig struct {
	MinConfidence   float64            `mapstructure:"min_confidence" validate:"required,gte=0,lte=1"`
	EdgeThresholds  map[string]float64 `mapstructure:"edge_thresholds"`
	Weights         map[string]float64 `mapstructure:"weights"`
	RecentFormGames int                `mapstructure:"recent_form_games" validate:"required,gt=0"`
	FormDecay       float64            `mapstructure:"form_decay" validate:"required,gt=0,lte=1"`
	MinHeadToHead   int                `mapstructure:"min_head_to_head" validate:"required,gt=0"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name            string  `mapstructure:"name" validate:"required"`
	Enabled         bool    `mapstructure:"enabled"`
	BaseURL         string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
}

// ScheduleConfig represents background job scheduling
type ScheduleConfig struct {
	RetrainCron               string `mapstructure:"retrain_cron" validate:"required"`
	InjuryPollIntervalSeconds int    `mapstructure:"injury_poll_interval_seconds" validate:"required,gt=0"`
	TeamSyncIntervalSeconds   int    `mapstructure:"team_sync_interval_seconds" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	InjuryStreamEnabled   bool `mapstructure:"injury_stream_enabled"`
	OutcomeLoggingEnabled bool `mapstructure:"outcome_logging_enabled"`
	AdvancedStatsEnabled  bool `mapstructure:"advanced_stats_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Source returns the data source configuration with the given name, if present
func (c *Config) Source(name string) (DataSourceConfig, bool) {
	for _, src := range c.DataIngestion.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return DataSourceConfig{}, false
}
