package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/courtline/internal/config"
)

// Sources bundles the constructed data source clients
type Sources struct {
	Stats    *StatsAPIClient
	Injuries *InjuryFeedClient
}

// Factory creates data source clients based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// Build constructs all configured data source clients
func (f *Factory) Build() (*Sources, error) {
	sources := &Sources{}

	for _, srcCfg := range f.config.DataIngestion.Sources {
		httpClient := f.newHTTPClient(srcCfg)
		cacheTTL := time.Duration(srcCfg.CacheTTLSeconds) * time.Second
		if cacheTTL <= 0 {
			cacheTTL = 5 * time.Minute
		}

		switch srcCfg.Name {
		case "stats_api":
			sources.Stats = NewStatsAPIClient(httpClient, srcCfg.BaseURL, srcCfg.APIKey, srcCfg.Enabled, cacheTTL, f.logger)
		case "injury_feed":
			sources.Injuries = NewInjuryFeedClient(httpClient, srcCfg.BaseURL, srcCfg.APIKey, srcCfg.Enabled, cacheTTL, f.logger)
		default:
			return nil, fmt.Errorf("unknown data source: %s", srcCfg.Name)
		}
	}

	if sources.Stats == nil {
		return nil, fmt.Errorf("stats_api source must be configured")
	}

	return sources, nil
}

func (f *Factory) newHTTPClient(srcCfg config.DataSourceConfig) *RateLimitedHTTPClient {
	clientCfg := DefaultHTTPClientConfig()
	clientCfg.BreakerName = srcCfg.Name
	if srcCfg.TimeoutSeconds > 0 {
		clientCfg.Timeout = time.Duration(srcCfg.TimeoutSeconds) * time.Second
	}
	if srcCfg.RateLimit > 0 {
		clientCfg.RateLimit = srcCfg.RateLimit
	}
	return NewRateLimitedHTTPClient(clientCfg, f.logger)
}
