package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/datasource"
)

func newStatsSources(serverURL string) *datasource.Sources {
	cfg := datasource.DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	httpClient := datasource.NewRateLimitedHTTPClient(cfg, quiet)
	return &datasource.Sources{
		Stats: datasource.NewStatsAPIClient(httpClient, serverURL, "k", true, time.Minute, quiet),
	}
}

func TestSyncPlayer(t *testing.T) {
	playerID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == fmt.Sprintf("/players/%s/gamelogs", playerID):
			fmt.Fprintf(w, `[
				{"gameId":"g1","playerId":"%s","playerName":"Test Player","team":"Los Angeles Lakers",
				 "opponent":"Boston Celtics","gameDate":"2026-01-15","home":true,"season":"2025-26",
				 "min":34,"pts":28,"reb":7,"ast":5,"fgm":10,"fga":20,"tpm":3,"tpa":8,"ftm":5,"fta":6},
				{"gameId":"g2","playerId":"%s","playerName":"","team":"LAL","opponent":"BOS",
				 "gameDate":"2026-01-17","home":false,"season":"2025-26","pts":-5}
			]`, playerID, playerID)
		case r.URL.Path == fmt.Sprintf("/players/%s/advanced", playerID):
			fmt.Fprintf(w, `{"playerId":"%s","season":"2025-26","gamesPlayed":40,"mpg":34,
				"ppg":26.1,"rpg":7.5,"apg":5.8,"usgPct":0.3,"per":24,"efgPct":0.56,
				"astRatio":25,"position":"SF"}`, playerID)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	repos, gameLogs, _, _ := newFakeRepositories()
	svc := NewIngestionService(repos, newStatsSources(server.URL), testLogger())

	report, err := svc.SyncPlayer(context.Background(), playerID, "2025-26")
	require.NoError(t, err)

	// the row with a missing name and negative points fails validation
	assert.Equal(t, 1, report.GameLogsFetched)
	assert.Equal(t, 1, report.GameLogsRejected)
	assert.True(t, report.AggregateSynced)

	require.Len(t, gameLogs.logs, 1)
	// team names are normalized to canonical codes before storage
	assert.Equal(t, "LAL", gameLogs.logs[0].Team)
	assert.Equal(t, "BOS", gameLogs.logs[0].Opponent)
}

func TestSyncPlayerWithoutSources(t *testing.T) {
	repos, _, _, _ := newFakeRepositories()
	svc := NewIngestionService(repos, nil, testLogger())

	_, err := svc.SyncPlayer(context.Background(), uuid.New(), "2025-26")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats source not configured")
}

func TestSyncTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams/BOS/context":
			fmt.Fprint(w, `{"team":"BOS","season":"2025-26","pace":101.2,"defRating":110.5,
				"allowedPerGame":{"points":13.8},"assistRate":0.62,"efgPct":0.55}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	repos, _, _, _ := newFakeRepositories()
	svc := NewIngestionService(repos, newStatsSources(server.URL), testLogger())

	// the unknown team 404s and is skipped; the known one lands
	report, err := svc.SyncTeams(context.Background(), []string{"Boston Celtics", "NOWHERE"}, "2025-26")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TeamsSynced)

	tc, err := repos.TeamContext.GetByTeamSeason(context.Background(), "BOS", "2025-26")
	require.NoError(t, err)
	assert.Equal(t, 101.2, tc.Pace)
}

func TestPollInjuries(t *testing.T) {
	var polled []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		team := r.URL.Query().Get("team")
		polled = append(polled, team)
		if team == "BOS" {
			fmt.Fprint(w, `[
				{"playerName":"Star Guard","team":"BOS","status":"out","significance":0.9,"reportedAt":"2026-02-01T12:00:00Z"},
				{"playerName":"Bench Wing","team":"BOS","status":"questionable","significance":0.2,"reportedAt":"2026-02-01T12:00:00Z"}
			]`)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	sources := newStatsSources(server.URL)
	cfg := datasource.DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	sources.Injuries = datasource.NewInjuryFeedClient(
		datasource.NewRateLimitedHTTPClient(cfg, quiet), server.URL, "k", true, time.Minute, quiet)

	repos, _, _, _ := newFakeRepositories()
	svc := NewIngestionService(repos, sources, testLogger())

	report, err := svc.PollInjuries(context.Background(), []string{"Boston Celtics", "LAL"})
	require.NoError(t, err)

	assert.Equal(t, 2, report.InjuriesFetched)
	assert.Equal(t, []string{"BOS", "LAL"}, polled)
}

func TestPollInjuriesWithoutSource(t *testing.T) {
	repos, _, _, _ := newFakeRepositories()
	svc := NewIngestionService(repos, &datasource.Sources{}, testLogger())

	_, err := svc.PollInjuries(context.Background(), []string{"BOS"})
	assert.Error(t, err)
}
