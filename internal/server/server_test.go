package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/infrastructure/storage"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*httptest.Server, *engine.GameService) {
	t.Helper()

	cfg := engine.NewConfig()
	cfg.AutosaveInterval = 0
	game, err := engine.NewService(cfg, storage.NewSessionRepository(storage.NewMemoryStore()))
	require.NoError(t, err)
	game.Start(context.Background())
	t.Cleanup(game.Stop)

	srv := New(game, "")
	srv.Debug = true
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, game
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readResponse(t *testing.T, conn *websocket.Conn) api.ServerResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg api.ServerResponse
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHealthAndVersion(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(ts.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	var info map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "pits", info["project"])
}

func TestWebSocket_InitAndMove(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	first := readResponse(t, conn)
	require.Equal(t, "UPDATE", first.Type)
	require.NotNil(t, first.Player)
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, 0, first.Player.Points)
	assert.Equal(t, "No points yet...", first.Player.Status)
	assert.Len(t, first.Cells, 17*17)
	require.NotEmpty(t, first.Logs)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{
		Action:  "MOVE",
		Payload: json.RawMessage(`{"di":1,"dj":0}`),
	}))
	moved := readResponse(t, conn)
	require.Equal(t, "UPDATE", moved.Type)
	assert.Equal(t, first.Tick+1, moved.Tick)
	assert.Equal(t, first.Player.Cell.I+1, moved.Player.Cell.I)
	assert.Equal(t, first.Player.Cell.J, moved.Player.Cell.J)
}

func TestWebSocket_Errors(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)
	readResponse(t, conn)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "ATTACK"}))
	msg := readResponse(t, conn)
	assert.Equal(t, "ERROR", msg.Type)

	// Невалидный payload
	require.NoError(t, conn.WriteJSON(api.ClientCommand{
		Action:  "MOVE",
		Payload: json.RawMessage(`{"di":5,"dj":0}`),
	}))
	msg = readResponse(t, conn)
	assert.Equal(t, "ERROR", msg.Type)

	// Яма вне видимости
	require.NoError(t, conn.WriteJSON(api.ClientCommand{
		Action:  "COLLECT",
		Payload: json.RawMessage(`{"i":0,"j":0}`),
	}))
	msg = readResponse(t, conn)
	require.Equal(t, "ERROR", msg.Type)
	require.NotEmpty(t, msg.Logs)
	last := msg.Logs[len(msg.Logs)-1]
	assert.Equal(t, "ERROR", last.Type)
	assert.Contains(t, last.Text, "no visible pit")
}

func TestDebugRoutes(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/debug/grid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var grid GridDump
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&grid))
	assert.Equal(t, 17*17, grid.Visible)
	assert.GreaterOrEqual(t, grid.KnownCells, 17*17)
	assert.Equal(t, grid.VisiblePits, grid.LivePits)

	resp, err = http.Get(ts.URL + "/debug/pits")
	require.NoError(t, err)
	defer resp.Body.Close()
	var pits []PitDump
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pits))
	assert.Len(t, pits, grid.Mementos)
	for _, p := range pits {
		assert.True(t, p.Live, p.Cell)
	}

	if len(pits) > 0 {
		resp, err = http.Get(ts.URL + "/debug/pits/" + strings.Replace(pits[0].Cell, ",", "/", 1))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var view api.PitView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Len(t, view.Tokens, len(pits[0].Tokens))
	}

	resp, err = http.Get(ts.URL + "/debug/pits/0/0")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/debug/pits/x/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDebugRoutes_Disabled(t *testing.T) {
	cfg := engine.NewConfig()
	game, err := engine.NewService(cfg, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(New(game, "").Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/debug/grid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
