package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
)

const statsAPISourceName = "stats_api"

// StatsAPIClient fetches game logs, advanced stats and team profiles from the
// league stats provider
type StatsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	cache      *FetchCache
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logrus.Logger
}

// statsAPIGameLog represents a game log row from the stats API
type statsAPIGameLog struct {
	GameID     string  `json:"gameId"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Team       string  `json:"team"`
	Opponent   string  `json:"opponent"`
	GameDate   string  `json:"gameDate"`
	Home       bool    `json:"home"`
	Season     string  `json:"season"`
	Minutes    float64 `json:"min"`
	Points     float64 `json:"pts"`
	Rebounds   float64 `json:"reb"`
	Assists    float64 `json:"ast"`
	FGM        float64 `json:"fgm"`
	FGA        float64 `json:"fga"`
	TPM        float64 `json:"tpm"`
	TPA        float64 `json:"tpa"`
	FTM        float64 `json:"ftm"`
	FTA        float64 `json:"fta"`
}

// statsAPIAdvanced represents season-level advanced stats from the stats API
type statsAPIAdvanced struct {
	PlayerID       string  `json:"playerId"`
	Season         string  `json:"season"`
	GamesPlayed    int     `json:"gamesPlayed"`
	MinutesPerGame float64 `json:"mpg"`
	PointsPerGame  float64 `json:"ppg"`
	ReboundsPG     float64 `json:"rpg"`
	AssistsPG      float64 `json:"apg"`
	UsagePct       float64 `json:"usgPct"`
	PER            float64 `json:"per"`
	EffectiveFGPct float64 `json:"efgPct"`
	AssistRatio    float64 `json:"astRatio"`
	Position       string  `json:"position"`
}

// statsAPITeam represents a team profile from the stats API
type statsAPITeam struct {
	Team              string             `json:"team"`
	Season            string             `json:"season"`
	Pace              float64            `json:"pace"`
	DefensiveRating   float64            `json:"defRating"`
	AllowedPerGame    map[string]float64 `json:"allowedPerGame"`
	AllowedByPosition map[string]float64 `json:"allowedByPosition"`
	AssistRate        float64            `json:"assistRate"`
	EffectiveFGPct    float64            `json:"efgPct"`
}

// NewStatsAPIClient creates a new stats API client
func NewStatsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, cacheTTL time.Duration, logger *logrus.Logger) *StatsAPIClient {
	if baseURL == "" {
		baseURL = "https://api.courtline-stats.com/v1"
	}
	return &StatsAPIClient{
		httpClient: httpClient,
		cache:      NewFetchCache(cacheTTL),
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *StatsAPIClient) Name() string {
	return statsAPISourceName
}

// IsEnabled returns whether this data source is currently enabled
func (c *StatsAPIClient) IsEnabled() bool {
	return c.enabled
}

// FetchGameLogs retrieves a player's game logs for a season
func (c *StatsAPIClient) FetchGameLogs(ctx context.Context, playerID uuid.UUID, season string) ([]models.GameLog, error) {
	if !c.enabled {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	cacheKey := Key(statsAPISourceName, "gamelogs", playerID.String(), season)
	if cached, found := c.cacheGet(cacheKey); found {
		return cached.([]models.GameLog), nil
	}

	url := fmt.Sprintf("%s/players/%s/gamelogs?season=%s", c.baseURL, playerID, season)
	var rows []statsAPIGameLog
	if err := c.getJSON(ctx, url, &rows); err != nil {
		return nil, err
	}

	logs := make([]models.GameLog, 0, len(rows))
	for _, row := range rows {
		log, err := c.convertGameLog(&row)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"game_id": row.GameID,
				"error":   err.Error(),
			}).Warn("Skipping malformed game log row")
			continue
		}
		logs = append(logs, *log)
	}

	c.cache.Set(cacheKey, logs)
	return logs, nil
}

// FetchSeasonAggregate retrieves season-level advanced stats for a player
func (c *StatsAPIClient) FetchSeasonAggregate(ctx context.Context, playerID uuid.UUID, season string) (*models.SeasonAggregate, error) {
	if !c.enabled {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	cacheKey := Key(statsAPISourceName, "advanced", playerID.String(), season)
	if cached, found := c.cacheGet(cacheKey); found {
		return cached.(*models.SeasonAggregate), nil
	}

	url := fmt.Sprintf("%s/players/%s/advanced?season=%s", c.baseURL, playerID, season)
	var row statsAPIAdvanced
	if err := c.getJSON(ctx, url, &row); err != nil {
		return nil, err
	}

	agg := &models.SeasonAggregate{
		ID:              uuid.New(),
		PlayerID:        playerID,
		Season:          row.Season,
		GamesPlayed:     row.GamesPlayed,
		MinutesPerGame:  row.MinutesPerGame,
		PointsPerGame:   row.PointsPerGame,
		ReboundsPerGame: row.ReboundsPG,
		AssistsPerGame:  row.AssistsPG,
		UsagePct:        row.UsagePct,
		PER:             row.PER,
		EffectiveFGPct:  row.EffectiveFGPct,
		AssistRatio:     row.AssistRatio,
		Position:        row.Position,
		UpdatedAt:       time.Now().UTC(),
	}

	c.cache.Set(cacheKey, agg)
	return agg, nil
}

// FetchTeamContext retrieves a team's pace and defensive profile
func (c *StatsAPIClient) FetchTeamContext(ctx context.Context, team, season string) (*models.TeamContext, error) {
	if !c.enabled {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	cacheKey := Key(statsAPISourceName, "team", team, season)
	if cached, found := c.cacheGet(cacheKey); found {
		return cached.(*models.TeamContext), nil
	}

	url := fmt.Sprintf("%s/teams/%s/context?season=%s", c.baseURL, team, season)
	var row statsAPITeam
	if err := c.getJSON(ctx, url, &row); err != nil {
		return nil, err
	}

	allowed := make(map[models.StatType]float64, len(row.AllowedPerGame))
	for stat, v := range row.AllowedPerGame {
		st, err := models.ParseStatType(stat)
		if err != nil {
			continue
		}
		allowed[st] = v
	}

	tc := &models.TeamContext{
		Team:              row.Team,
		Season:            row.Season,
		Pace:              row.Pace,
		DefensiveRating:   row.DefensiveRating,
		AllowedPerGame:    allowed,
		AllowedByPosition: row.AllowedByPosition,
		TeamAssistRate:    row.AssistRate,
		TeamEffFGPct:      row.EffectiveFGPct,
		UpdatedAt:         time.Now().UTC(),
	}

	c.cache.Set(cacheKey, tc)
	return tc, nil
}

func (c *StatsAPIClient) cacheGet(key string) (interface{}, bool) {
	value, found := c.cache.Get(key)
	metrics.UpdateCacheHitRate(statsAPISourceName, c.cache.HitRate())
	return value, found
}

func (c *StatsAPIClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewDataSourceError(statsAPISourceName, ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewDataSourceError(statsAPISourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return NewDataSourceError(statsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case http.StatusNotFound:
		return NewDataSourceError(statsAPISourceName, ErrCodeNotFound, "resource not found", ErrNotFound)
	case http.StatusTooManyRequests:
		return NewDataSourceError(statsAPISourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	default:
		body, _ := io.ReadAll(resp.Body)
		return NewDataSourceError(statsAPISourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(statsAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return nil
}

func (c *StatsAPIClient) convertGameLog(row *statsAPIGameLog) (*models.GameLog, error) {
	playerID, err := uuid.Parse(row.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player id %q: %w", row.PlayerID, err)
	}

	gameDate, err := time.Parse("2006-01-02", row.GameDate)
	if err != nil {
		return nil, fmt.Errorf("invalid game date %q: %w", row.GameDate, err)
	}

	return &models.GameLog{
		ID:              uuid.New(),
		PlayerID:        playerID,
		PlayerName:      row.PlayerName,
		GameID:          row.GameID,
		Team:            row.Team,
		Opponent:        row.Opponent,
		GameDate:        gameDate,
		IsHome:          row.Home,
		Season:          row.Season,
		Minutes:         row.Minutes,
		Points:          row.Points,
		Rebounds:        row.Rebounds,
		Assists:         row.Assists,
		FieldGoalsMade:  row.FGM,
		FieldGoalsAtt:   row.FGA,
		ThreePointsMade: row.TPM,
		ThreePointsAtt:  row.TPA,
		FreeThrowsMade:  row.FTM,
		FreeThrowsAtt:   row.FTA,
	}, nil
}
