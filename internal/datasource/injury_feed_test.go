package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInjuryClient(serverURL string) *InjuryFeedClient {
	return NewInjuryFeedClient(testHTTPClient(), serverURL, "test-key", true, time.Minute, quietLogger())
}

func TestFetchInjuries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"playerName":"Star Guard","team":"LAL","status":"out","significance":0.8,
			 "reportedAt":"2026-02-01T14:00:00Z"},
			{"playerName":"Role Player","team":"LAL","status":"questionable","significance":0.2,
			 "reportedAt":"bad-timestamp"}
		]`)
	}))
	defer server.Close()

	client := newTestInjuryClient(server.URL)
	injuries, err := client.FetchInjuries(context.Background(), "LAL")
	require.NoError(t, err)

	require.Len(t, injuries, 2)
	assert.Equal(t, "Star Guard", injuries[0].PlayerName)
	assert.Equal(t, 0.8, injuries[0].Significance)
	assert.Equal(t, time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC), injuries[0].ReportedAt)
	// unparseable timestamps default to now rather than dropping the report
	assert.False(t, injuries[1].ReportedAt.IsZero())
}

func TestFetchInjuriesDisabledIsSilent(t *testing.T) {
	client := NewInjuryFeedClient(testHTTPClient(), "http://unused", "", false, time.Minute, quietLogger())

	injuries, err := client.FetchInjuries(context.Background(), "LAL")
	assert.NoError(t, err)
	assert.Nil(t, injuries)
}

func TestFetchInjuriesServerErrorDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestInjuryClient(server.URL)
	injuries, err := client.FetchInjuries(context.Background(), "LAL")

	// projections proceed with the neutral injury factor
	assert.NoError(t, err)
	assert.Nil(t, injuries)
}

func TestFetchInjuriesCaches(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := newTestInjuryClient(server.URL)
	_, err := client.FetchInjuries(context.Background(), "BOS")
	require.NoError(t, err)
	_, err = client.FetchInjuries(context.Background(), "BOS")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
