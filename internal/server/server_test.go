package server

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	Log.SetLevel(logrus.WarnLevel)
	m.Run()
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Token.Secret = "test-secret"
	s := New(&cfg, rand.New(rand.NewPCG(1, 2)))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func newGame(t *testing.T, ts *httptest.Server, query string) newGameResponse {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/v1/game?"+query, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[newGameResponse](t, resp)
}

// useLayout swaps the session's board for a fixed one.
func useLayout(t *testing.T, s *Server, sessionId string, height, width int, layout ...mines.Point) {
	t.Helper()
	session, ok := s.sessions.get(sessionId)
	require.True(t, ok)
	grid, err := mines.FromLayout(height, width, layout...)
	require.NoError(t, err)
	session.mu.Lock()
	session.game.RestartWith(grid)
	session.mu.Unlock()
}

func TestStatus(t *testing.T) {
	_, ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/v1/status", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[string](t, resp))
}

func TestNewGameDefaults(t *testing.T) {
	s, ts := newTestServer(t)
	res := newGame(t, ts, "")

	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.SessionId)
	assert.Equal(t, 9, res.Height)
	assert.Equal(t, 9, res.Width)
	assert.Equal(t, 10, res.MineCount)
	assert.Equal(t, 10, res.FlagsRemaining)
	assert.Equal(t, game.InProgress, res.Status)
	assert.Nil(t, res.EndedAt)
	assert.Nil(t, res.Exploded)
	require.Len(t, res.Grid, 81)
	for _, state := range res.Grid {
		assert.Equal(t, game.Unknown, state)
	}
	assert.Equal(t, 1, s.sessions.len())
}

func TestNewGameRejectsBadParams(t *testing.T) {
	_, ts := newTestServer(t)
	for _, query := range []string{
		"height=3&width=9&mine_count=10",
		"height=9&width=40&mine_count=10",
		"height=9&width=9&mine_count=28",
		"height=9&width=9&mine_count=0",
		"height=abc",
	} {
		resp := do(t, http.MethodPost, ts.URL+"/v1/game?"+query, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
		body := decode[map[string]string](t, resp)
		assert.NotEmpty(t, body["error"], query)
	}
}

func TestSessionAccess(t *testing.T) {
	s, ts := newTestServer(t)
	a := newGame(t, ts, "")
	b := newGame(t, ts, "")

	url := ts.URL + "/v1/game/" + a.SessionId
	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, url, "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, url, "garbage").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, url, b.Token).StatusCode)

	resp := do(t, http.MethodGet, url, a.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, a.SessionId, decode[GameSessionJSON](t, resp).SessionId)

	resp = do(t, http.MethodGet, url+"?token="+a.Token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token, err := s.tokens.sign("missing")
	require.NoError(t, err)
	resp = do(t, http.MethodGet, ts.URL+"/v1/game/missing", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMoveRejectsBadPosition(t *testing.T) {
	_, ts := newTestServer(t)
	g := newGame(t, ts, "")
	base := ts.URL + "/v1/game/" + g.SessionId

	for _, path := range []string{
		"/reveal?row=9&col=0",
		"/reveal?row=-1&col=0",
		"/flag?row=0",
		"/chord?row=a&col=1",
	} {
		resp := do(t, http.MethodPost, base+path, g.Token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestPlaySession(t *testing.T) {
	s, ts := newTestServer(t)
	g := newGame(t, ts, "height=5&width=5&mine_count=1")
	useLayout(t, s, g.SessionId, 5, 5, mines.Point{Row: 2, Col: 2})
	base := ts.URL + "/v1/game/" + g.SessionId

	resp := do(t, http.MethodPost, base+"/flag?row=1&col=1", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	move := decode[moveResponse](t, resp)
	assert.Equal(t, 0, move.FlagsRemaining)
	assert.Equal(t, game.Flagged, move.Grid[6])

	resp = do(t, http.MethodPost, base+"/reveal?row=0&col=0", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	move = decode[moveResponse](t, resp)
	assert.Len(t, move.Opened, 23)
	assert.Equal(t, 23, move.Revealed)
	assert.Equal(t, game.InProgress, move.Status)
	assert.Equal(t, game.Unknown, move.Grid[12])

	resp = do(t, http.MethodPost, base+"/reveal?row=2&col=2", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	move = decode[moveResponse](t, resp)
	assert.Equal(t, game.Lost, move.Status)
	assert.Equal(t, 25, move.Revealed)
	require.NotNil(t, move.Exploded)
	assert.Equal(t, mines.Point{Row: 2, Col: 2}, *move.Exploded)
	assert.NotNil(t, move.EndedAt)
	assert.Equal(t, game.ExplodedMine, move.Grid[12])
	assert.Equal(t, game.FalselyFlagged, move.Grid[6])

	resp = do(t, http.MethodPost, base+"/restart", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session := decode[GameSessionJSON](t, resp)
	assert.Equal(t, game.InProgress, session.Status)
	assert.Nil(t, session.EndedAt)
	assert.Zero(t, session.Revealed)
	assert.Equal(t, 1, session.MineCount)

	resp = do(t, http.MethodPost, base+"/forfeit", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	move = decode[moveResponse](t, resp)
	assert.Equal(t, game.Lost, move.Status)
	assert.Len(t, move.Opened, 25)
	assert.NotNil(t, move.EndedAt)
}

func TestChordOverHTTP(t *testing.T) {
	s, ts := newTestServer(t)
	g := newGame(t, ts, "height=5&width=5&mine_count=1")
	useLayout(t, s, g.SessionId, 5, 5, mines.Point{Row: 0, Col: 0})
	base := ts.URL + "/v1/game/" + g.SessionId

	do(t, http.MethodPost, base+"/reveal?row=1&col=1", g.Token)
	do(t, http.MethodPost, base+"/flag?row=0&col=0", g.Token)
	resp := do(t, http.MethodPost, base+"/chord?row=1&col=1", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	move := decode[moveResponse](t, resp)
	assert.Equal(t, game.Won, move.Status)
	assert.Equal(t, game.CorrectlyFlagged, move.Grid[0])
}

func TestRestartWithNewSize(t *testing.T) {
	_, ts := newTestServer(t)
	g := newGame(t, ts, "")
	base := ts.URL + "/v1/game/" + g.SessionId

	resp := do(t, http.MethodPost, base+"/restart?height=16&width=30&mine_count=99", g.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session := decode[GameSessionJSON](t, resp)
	assert.Len(t, session.Grid, 480)
	assert.Equal(t, 99, session.FlagsRemaining)

	resp = do(t, http.MethodPost, base+"/restart?height=100", g.Token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCors(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/v1/game", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func wsURL(ts *httptest.Server, sessionId, token string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") +
		"/v1/game/" + sessionId + "/connect?token=" + token
}

func TestWebSocket(t *testing.T) {
	s, ts := newTestServer(t)
	g := newGame(t, ts, "height=5&width=5&mine_count=1")
	useLayout(t, s, g.SessionId, 5, 5, mines.Point{Row: 2, Col: 2})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, g.SessionId, g.Token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 1 1\no 0 0\n")))
	var session GameSessionJSON
	require.NoError(t, conn.ReadJSON(&session))
	assert.Equal(t, 23, session.Revealed)
	assert.Equal(t, 0, session.FlagsRemaining)
	assert.Equal(t, game.InProgress, session.Status)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("g\nz 1 1")))
	var cmdErr commandError
	require.NoError(t, conn.ReadJSON(&cmdErr))
	assert.Equal(t, 1, cmdErr.Line)
	assert.Contains(t, cmdErr.Error, "unknown command")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 2 2")))
	require.NoError(t, conn.ReadJSON(&session))
	assert.Equal(t, game.Lost, session.Status)
	assert.NotNil(t, session.EndedAt)

	session = GameSessionJSON{}
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("n")))
	require.NoError(t, conn.ReadJSON(&session))
	assert.Equal(t, game.InProgress, session.Status)
	assert.Nil(t, session.EndedAt)
	assert.Zero(t, session.Revealed)

	// The session stays usable over HTTP while the socket is idle.
	resp := do(t, http.MethodGet, ts.URL+"/v1/game/"+g.SessionId, g.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocketNeedsToken(t *testing.T) {
	_, ts := newTestServer(t)
	g := newGame(t, ts, "")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, g.SessionId, ""), nil)
	assert.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegistryPrune(t *testing.T) {
	r := newRegistry()
	old := newSession(game.NewController(nil))
	old.createdAt = time.Now().Add(-time.Hour)
	fresh := newSession(game.NewController(nil))
	r.add(old)
	r.add(fresh)

	assert.Equal(t, 1, r.prune(time.Now().Add(-time.Minute)))
	_, ok := r.get(old.SessionId)
	assert.False(t, ok)
	_, ok = r.get(fresh.SessionId)
	assert.True(t, ok)
}
