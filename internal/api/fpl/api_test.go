package fpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/fplcheck/internal/config"
	"github.com/omarshaarawi/fplcheck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.FPLAPI{
		BaseURL:   srv.URL + "/api/",
		UserAgent: "fplcheck-test",
		Timeout:   2 * time.Second,
	}, nil)
	return NewAPI(client)
}

func TestBootstrap(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bootstrap-static/", r.URL.Path)
		assert.Equal(t, "fplcheck-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{
			"events": [{"id": 11, "is_current": false}, {"id": 12, "is_current": true}],
			"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
			"elements": [{"id": 7, "web_name": "Saka", "team": 1, "element_type": 3, "status": "a", "chance_of_playing_this_round": null}],
			"element_types": [{"id": 3, "singular_name_short": "MID"}]
		}`))
	})

	resp, err := api.Bootstrap(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Elements, 1)
	assert.Equal(t, "Saka", resp.Elements[0].WebName)
	assert.Nil(t, resp.Elements[0].ChanceOfPlayingThisRound)
	assert.Equal(t, "ARS", resp.Teams[0].ShortName)

	gw, err := CurrentGameweek(resp)
	require.NoError(t, err)
	assert.Equal(t, 12, gw)
}

func TestFixtures_AbsentFieldsDefault(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fixtures/", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("event"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "team_h": 1, "team_a": 2, "started": true, "finished": false, "finished_provisional": false, "minutes": 63, "team_h_score": 1, "team_a_score": 0},
			{"id": 2, "team_h": 3, "team_a": 4, "minutes": null, "team_h_score": null}
		]`))
	})

	fixtures, err := api.Fixtures(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, 63, fixtures[0].Minutes)
	require.NotNil(t, fixtures[0].TeamHScore)
	assert.Equal(t, 1, *fixtures[0].TeamHScore)

	assert.Zero(t, fixtures[1].Minutes)
	assert.False(t, fixtures[1].Started)
	assert.Nil(t, fixtures[1].TeamHScore)
}

func TestLiveAndPicks(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/event/12/live/":
			_, _ = w.Write([]byte(`{"elements": [{"id": 7, "stats": {"minutes": 90, "red_cards": 0, "total_points": 9, "bonus": 3}}]}`))
		case "/api/entry/785223/event/12/picks/":
			_, _ = w.Write([]byte(`{
				"entry_history": {"event": 12, "event_transfers_cost": 4},
				"picks": [{"element": 7, "position": 1, "multiplier": 2, "is_captain": true}]
			}`))
		default:
			http.NotFound(w, r)
		}
	})

	live, err := api.Live(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, live.Elements, 1)
	assert.Equal(t, models.LiveStats{Minutes: 90, TotalPoints: 9, Bonus: 3}, live.Elements[0].Stats)

	picks, err := api.EntryPicks(context.Background(), 785223, 12)
	require.NoError(t, err)
	assert.Equal(t, 4, picks.EntryHistory.EventTransfersCost)
	require.Len(t, picks.Picks, 1)
	assert.True(t, picks.Picks[0].IsCaptain)
}

func TestGet_UnexpectedStatus(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("The game is being updated."))
	})

	_, err := api.Live(context.Background(), 3)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "gameweek 3")
	assert.Contains(t, err.Error(), "The game is being updated.")
}

func TestGet_MalformedBody(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": [`))
	})

	_, err := api.Bootstrap(context.Background())
	assert.Error(t, err)
}

func TestCurrentGameweek_NoneCurrent(t *testing.T) {
	_, err := CurrentGameweek(&models.BootstrapResponse{Events: []models.Event{{ID: 1}, {ID: 2}}})
	assert.True(t, errors.Is(err, ErrNoCurrentGameweek))
}
