package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltomm/PinoGPT/internal/api"
	"github.com/soltomm/PinoGPT/internal/api/apierr"
	"github.com/soltomm/PinoGPT/internal/api/response"
	"github.com/soltomm/PinoGPT/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := factory.NewTestApp()
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		RosterService:   app.RosterService,
		BalancerService: app.BalancerService,
		GameController:  app.GameController,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// addPlayers registers players p1..pN with votes 1..N
func (ts *testServer) addPlayers(t *testing.T, n int) []string {
	t.Helper()
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("p%d", i+1)
		rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{
			"name": names[i],
			"vote": i + 1,
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	return names
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.ErrorResponse {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestAddPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{
		"name": "Marco",
		"vote": 7,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Marco", resp.Name)
	assert.Equal(t, 1666, resp.Rating)
	assert.Equal(t, 0, resp.GamesPlayed)
}

func TestAddPlayerInvalidVote(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{
		"name": "Marco",
		"vote": 11,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeValidationError, decodeError(t, rr).Error.Code)
}

func TestAddPlayerDuplicate(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"name": "Marco", "vote": 5}
	rr := ts.request(http.MethodPost, "/api/v1/players", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/players", map[string]any{"name": "MARCO", "vote": 6})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodePlayerExists, decodeError(t, rr).Error.Code)
}

func TestRemovePlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.addPlayers(t, 1)

	rr := ts.request(http.MethodDelete, "/api/v1/players/p1", map[string]any{
		"credential": factory.TestAdminSecret,
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestRemovePlayerBadCredential(t *testing.T) {
	ts := newTestServer(t)
	ts.addPlayers(t, 1)

	rr := ts.request(http.MethodDelete, "/api/v1/players/p1", map[string]any{
		"credential": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Error.Code)
}

func TestRemovePlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/api/v1/players/nobody", map[string]any{
		"credential": factory.TestAdminSecret,
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodePlayerNotFound, decodeError(t, rr).Error.Code)
}

func TestLeaderboardSortsByRating(t *testing.T) {
	ts := newTestServer(t)
	ts.addPlayers(t, 3)

	rr := ts.request(http.MethodGet, "/api/v1/players", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 3)
	assert.Equal(t, "p3", players[0].Name)
	assert.Equal(t, "p2", players[1].Name)
	assert.Equal(t, "p1", players[2].Name)
}

func TestProposeTeams(t *testing.T) {
	ts := newTestServer(t)
	names := ts.addPlayers(t, 10)

	rr := ts.request(http.MethodPost, "/api/v1/teams/propose", map[string]any{
		"players": names,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var proposal response.TeamProposal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &proposal))
	assert.Len(t, proposal.Team1, 5)
	assert.Len(t, proposal.Team2, 5)
	assert.Contains(t, proposal.Team1, "p10")
	assert.Contains(t, proposal.Team2, "p9")

	// Proposing never creates a game
	rr = ts.request(http.MethodGet, "/api/v1/games/pending", nil)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestProposeTeamsUnknownPlayers(t *testing.T) {
	ts := newTestServer(t)
	names := ts.addPlayers(t, 9)

	rr := ts.request(http.MethodPost, "/api/v1/teams/propose", map[string]any{
		"players": append(names, "ghost"),
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, apierr.CodeValidationError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "ghost")
}

func TestConfirmAndScoreGame(t *testing.T) {
	ts := newTestServer(t)
	names := ts.addPlayers(t, 10)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{
		"team1": names[:5],
		"team2": names[5:],
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var game response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, "20250301_183000", game.ID)
	assert.Equal(t, "pending", game.Status)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/score", map[string]any{
		"score1": 3,
		"score2": 1,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var result response.MatchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "team1", result.Winner)
	assert.Equal(t, "completed", result.Game.Status)
	assert.Len(t, result.RatingChanges, 10)

	// Re-scoring conflicts
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/score", map[string]any{
		"score1": 3,
		"score2": 1,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameCompleted, decodeError(t, rr).Error.Code)

	// The game shows up in history
	rr = ts.request(http.MethodGet, "/api/v1/games/history", nil)
	var history []response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, game.ID, history[0].ID)
}

func TestScoreUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/20990101_000000/score", map[string]any{
		"score1": 1,
		"score2": 0,
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Error.Code)
}

func TestDeletePendingGame(t *testing.T) {
	ts := newTestServer(t)
	names := ts.addPlayers(t, 10)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{
		"team1": names[:5],
		"team2": names[5:],
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var game response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))

	rr = ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, map[string]any{
		"credential": factory.TestAdminSecret,
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/pending", nil)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestManualGame(t *testing.T) {
	ts := newTestServer(t)
	names := ts.addPlayers(t, 10)

	rr := ts.request(http.MethodPost, "/api/v1/games/manual", map[string]any{
		"team1":  names[:5],
		"team2":  names[5:],
		"score1": 2,
		"score2": 5,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var result response.MatchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "20250301_183000_manual", result.Game.ID)
	assert.Equal(t, "team2", result.Winner)

	rr = ts.request(http.MethodGet, "/api/v1/games/pending", nil)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestInvalidBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Error.Code)
}
