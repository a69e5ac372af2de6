package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
)

const injuryFeedSourceName = "injury_feed"

// InjuryFeedClient fetches current injury reports from the injury feed provider
type InjuryFeedClient struct {
	httpClient *RateLimitedHTTPClient
	cache      *FetchCache
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logrus.Logger
}

// injuryFeedEntry represents one injury report from the feed
type injuryFeedEntry struct {
	PlayerName   string  `json:"playerName"`
	Team         string  `json:"team"`
	Status       string  `json:"status"`
	Significance float64 `json:"significance"`
	ReportedAt   string  `json:"reportedAt"`
}

// NewInjuryFeedClient creates a new injury feed client
func NewInjuryFeedClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, cacheTTL time.Duration, logger *logrus.Logger) *InjuryFeedClient {
	if baseURL == "" {
		baseURL = "https://api.courtline-injuries.com/v1"
	}
	return &InjuryFeedClient{
		httpClient: httpClient,
		cache:      NewFetchCache(cacheTTL),
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *InjuryFeedClient) Name() string {
	return injuryFeedSourceName
}

// IsEnabled returns whether this data source is currently enabled
func (c *InjuryFeedClient) IsEnabled() bool {
	return c.enabled
}

// FetchInjuries retrieves current injury reports for a team. An unavailable
// feed yields an empty report set rather than an error so projections can
// proceed with the neutral injury factor.
func (c *InjuryFeedClient) FetchInjuries(ctx context.Context, team string) ([]models.InjuryStatus, error) {
	if !c.enabled {
		return nil, nil
	}

	cacheKey := Key(injuryFeedSourceName, "team", team)
	cached, found := c.cache.Get(cacheKey)
	metrics.UpdateCacheHitRate(injuryFeedSourceName, c.cache.HitRate())
	if found {
		return cached.([]models.InjuryStatus), nil
	}

	url := fmt.Sprintf("%s/injuries?team=%s", c.baseURL, team)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(injuryFeedSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"team":  team,
			"error": err.Error(),
		}).Warn("Injury feed unavailable, proceeding without reports")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(logrus.Fields{
			"team":   team,
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("Injury feed returned non-OK status, proceeding without reports")
		return nil, nil
	}

	var entries []injuryFeedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, NewDataSourceError(injuryFeedSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	injuries := make([]models.InjuryStatus, 0, len(entries))
	for _, entry := range entries {
		reportedAt, err := time.Parse(time.RFC3339, entry.ReportedAt)
		if err != nil {
			reportedAt = time.Now().UTC()
		}
		injuries = append(injuries, models.InjuryStatus{
			PlayerName:   entry.PlayerName,
			Team:         entry.Team,
			Status:       entry.Status,
			Significance: entry.Significance,
			ReportedAt:   reportedAt,
		})
	}

	c.cache.Set(cacheKey, injuries)
	return injuries, nil
}
